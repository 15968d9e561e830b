package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/service"
)

// EmployerHandlers serves the employer-scoped read views.
type EmployerHandlers struct {
	Employers *service.EmployerService
	Interests *service.InterestService
	Logger    *slog.Logger
}

// Applicants handles HTTP requests for every interest an employer sent or received.
func (h *EmployerHandlers) Applicants(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r, "employer")
	if !ok {
		return
	}
	buckets, err := h.Interests.EmployerApplicants(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, buckets)
}

// Credit handles HTTP requests for an employer's ad-credit ledger.
func (h *EmployerHandlers) Credit(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r, "employer")
	if !ok {
		return
	}
	info, err := h.Employers.CreditInfo(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// EmployeeHandlers serves the employee-scoped read views.
type EmployeeHandlers struct {
	Interests *service.InterestService
	Logger    *slog.Logger
}

// Applications handles HTTP requests for every interest an employee sent or received.
func (h *EmployeeHandlers) Applications(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r, "employee")
	if !ok {
		return
	}
	buckets, err := h.Interests.EmployeeApplications(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, buckets)
}

// HiredJobs handles HTTP requests for the jobs an employee was hired into.
func (h *EmployeeHandlers) HiredJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := partyIDFromPath(w, r, "employee")
	if !ok {
		return
	}
	hired, err := h.Interests.EmployeeHiredJobs(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	if hired == nil {
		hired = []model.InterestView{}
	}
	WriteJSON(w, http.StatusOK, hired)
}
