package bootstrap

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/jobmarket-api/config"
	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/data"
	httpx "github.com/target/jobmarket-api/internal/http"
	"github.com/target/jobmarket-api/internal/observability/statsd"
	"github.com/target/jobmarket-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs       *service.JobService
	Candidates *service.CandidateService
	Interests  *service.InterestService
	Employers  *service.EmployerService
	Audit      *service.AuditService

	// CandidateCache is nil when caching is disabled.
	CandidateCache *core.CandidateCache
	Metrics        statsd.Sink
	HealthChecks   map[string]httpx.HealthCheck
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional: nil disables the recommendation cache
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Jobs      *data.JobRepo
	Employers *data.EmployerRepo
	Employees *data.EmployeeRepo
	Interests *data.InterestRepo
	Audit     *data.AuditRepo
	Cache     *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, client redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		Jobs:      data.NewJobRepo(db),
		Employers: data.NewEmployerRepo(db),
		Employees: data.NewEmployeeRepo(db),
		Interests: data.NewInterestRepo(db),
		Audit:     data.NewAuditRepo(db),
	}
	if client != nil {
		repos.Cache = data.NewRedisCacheRepo(client)
	}
	return repos
}

// buildMetricsSink returns a StatsD client when metrics are enabled, otherwise statsd.Discard.
//
//nolint:ireturn // callers only need the Sink surface
func buildMetricsSink(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) statsd.Sink {
	if !cfg.IsEnabled() {
		return statsd.Discard{}
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Tags:    map[string]string{"service": "jobmarket-api"},
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return statsd.Discard{}
	}
	logger.Info("statsd metrics enabled", "addr", cfg.StatsdAddress, "prefix", cfg.Prefix)
	return client
}

// BuildServices constructs every service over the given infrastructure.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	var client redis.UniversalClient
	if cfg.Cache.Enabled {
		client = deps.RedisClient
	}
	repos := buildRepositories(deps.DB, client)
	metrics := buildMetricsSink(cfg.Observability.Metrics, logger)

	var candidateCache *core.CandidateCache
	if repos.Cache != nil {
		candidateCache = core.NewCandidateCache(core.CandidateCacheOptions{
			Cache: repos.Cache,
			TTL:   cfg.Cache.CandidatesTTL,
		})
	} else {
		logger.Info("recommendation cache disabled")
	}

	audit := service.NewAuditService(service.AuditServiceOptions{Repo: repos.Audit, Logger: logger})

	return ServiceContainer{
		Jobs: service.MustNewJobService(service.JobServiceOptions{
			Repo:       repos.Jobs,
			Candidates: candidateCache,
			Audit:      audit,
			Metrics:    metrics,
			Logger:     logger,
		}),
		Candidates: service.MustNewCandidateService(service.CandidateServiceOptions{
			Jobs:      repos.Jobs,
			Employees: repos.Employees,
			Cache:     candidateCache,
			Config: service.CandidateServiceConfig{
				Limit:          cfg.Matching.CandidateLimit,
				ComputeTimeout: cfg.Matching.ComputeTimeout,
			},
			Metrics: metrics,
			Logger:  logger,
		}),
		Interests: service.MustNewInterestService(service.InterestServiceOptions{
			Repos: service.InterestRepositories{
				Interests: repos.Interests,
				Jobs:      repos.Jobs,
				Employers: repos.Employers,
				Employees: repos.Employees,
			},
			Logger: logger,
		}),
		Employers: service.MustNewEmployerService(service.EmployerServiceOptions{
			Repo:   repos.Employers,
			Audit:  audit,
			Logger: logger,
		}),
		Audit:          audit,
		CandidateCache: candidateCache,
		Metrics:        metrics,
		HealthChecks:   buildHealthChecks(deps.DB, repos),
	}, nil
}

func buildHealthChecks(db *sql.DB, repos *serviceRepositories) map[string]httpx.HealthCheck {
	checks := map[string]httpx.HealthCheck{
		"database": db.PingContext,
	}
	if repos.Cache != nil {
		checks["redis"] = repos.Cache.Health
	}
	return checks
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	if closer, ok := c.Metrics.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
