package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/jobmarket-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs       *service.JobService
	Candidates *service.CandidateService
	Interests  *service.InterestService
	Employers  *service.EmployerService
	Audit      *service.AuditService
	// Optional: dependency probes reported by /healthz.
	HealthChecks map[string]HealthCheck
	Logger       *slog.Logger // Logger for request errors (optional)
}

// NewRouter creates and configures the API router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registerJobRoutes(mux, &JobHandlers{
		Jobs:       services.Jobs,
		Candidates: services.Candidates,
		Interests:  services.Interests,
		Audit:      services.Audit,
		Logger:     logger,
	})
	registerEmployerRoutes(mux, &EmployerHandlers{
		Employers: services.Employers,
		Interests: services.Interests,
		Logger:    logger,
	})
	registerEmployeeRoutes(mux, &EmployeeHandlers{Interests: services.Interests, Logger: logger})

	health := healthHandler(services.HealthChecks)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: ErrCodeNotFound})
	})

	return mux
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("POST /api/jobs", h.Create)
	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("GET /api/jobs/{id}", h.GetByID)
	mux.HandleFunc("PUT /api/jobs/{id}", h.Update)
	mux.HandleFunc("DELETE /api/jobs/{id}", h.Delete)
	mux.HandleFunc("PATCH /api/jobs/{id}/status", h.ChangeStatus)
	mux.HandleFunc("PATCH /api/jobs/{id}/verification-status", h.ChangeVerification)
	mux.HandleFunc("GET /api/jobs/{id}/recommended-candidates", h.RecommendedCandidates)
	mux.HandleFunc("GET /api/jobs/{id}/applicants", h.Applicants)
	mux.HandleFunc("GET /api/jobs/{id}/audit-logs", h.AuditLogs)
}

func registerEmployerRoutes(mux *http.ServeMux, h *EmployerHandlers) {
	mux.HandleFunc("GET /api/employers/{id}/applicants", h.Applicants)
	mux.HandleFunc("GET /api/employers/{id}/credit", h.Credit)
}

func registerEmployeeRoutes(mux *http.ServeMux, h *EmployeeHandlers) {
	mux.HandleFunc("GET /api/employees/{id}/applications", h.Applications)
	mux.HandleFunc("GET /api/employees/{id}/hired-jobs", h.HiredJobs)
}

// HandlerConfig controls the middleware chain wrapped around the router.
type HandlerConfig struct {
	Logger             *slog.Logger
	ActorHeader        string
	CompressionEnabled bool
	CompressionLevel   int
}

// NewHandler wraps the router in the middleware chain.
// Order: Recover -> Actor -> Logging -> Compression -> Router.
func NewHandler(services RouterServices, cfg HandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if services.Logger == nil {
		services.Logger = logger
	}

	h := NewRouter(services)
	if cfg.CompressionEnabled {
		h = Compression(CompressionConfig{Level: cfg.CompressionLevel, Logger: logger})(h)
	}
	h = Logging(logger)(h)
	h = Actor(cfg.ActorHeader)(h)
	h = Recover(logger)(h)
	return h
}
