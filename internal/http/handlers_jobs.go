// Package httpx provides the JSON HTTP API of the job marketplace admin service.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/target/jobmarket-api/internal/domain/job"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/http/validation"
	"github.com/target/jobmarket-api/internal/service"
)

const (
	defaultJobListLimit   = 50
	maxJobListLimit       = 200
	defaultAuditListLimit = 50
	maxAuditListLimit     = 200
)

// JobHandlers provides HTTP handlers for job-related operations.
type JobHandlers struct {
	Jobs       *service.JobService
	Candidates *service.CandidateService
	Interests  *service.InterestService
	Audit      *service.AuditService
	Logger     *slog.Logger
}

// Create handles HTTP requests to post a new job against the employer's ad credits.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.Create(r.Context(), &req)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// List handles HTTP requests to page through live jobs.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseJobListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: ErrCodeValidation, Err: err})
		return
	}

	jobs, err := h.Jobs.List(r.Context(), opts)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// GetByID handles HTTP requests to fetch one job with its child sets.
func (h *JobHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	job, err := h.Jobs.GetByID(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Update handles HTTP requests to fully replace a job's fields and child sets.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.Update(r.Context(), id, &req)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Delete handles HTTP requests to tombstone a job.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	if err := h.Jobs.Delete(r.Context(), id); err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// ChangeStatus handles HTTP requests to move an approved job between inactive, active and expired.
func (h *JobHandlers) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	var req model.ChangeStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeValidation,
			Err:     errors.New("status must be one of: inactive, active, expired"),
		})
		return
	}

	job, err := h.Jobs.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// ChangeVerification handles HTTP requests to record a staff review outcome.
func (h *JobHandlers) ChangeVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	var req model.ChangeVerificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !req.VerificationStatus.Valid() {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeValidation,
			Err:     errors.New("verification_status must be one of: pending, approved, rejected"),
		})
		return
	}

	job, err := h.Jobs.ChangeVerification(r.Context(), id, req.VerificationStatus)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// RecommendedCandidates handles HTTP requests for the employees matching a job.
func (h *JobHandlers) RecommendedCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	employees, err := h.Candidates.Recommend(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, employees)
}

// Applicants handles HTTP requests for the interests recorded against a job.
func (h *JobHandlers) Applicants(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	buckets, err := h.Interests.JobApplicants(r.Context(), id)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	WriteJSON(w, http.StatusOK, buckets)
}

// AuditLogs handles HTTP requests for the change history of a job, including deleted jobs.
func (h *JobHandlers) AuditLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}
	limit, _ := ParseLimitOffset(r, defaultAuditListLimit, maxAuditListLimit)
	logs, err := h.Audit.ListByEntity(r.Context(), "job", id, limit)
	if err != nil {
		RenderError(w, r, err, h.Logger)
		return
	}
	if logs == nil {
		logs = []*model.AuditLog{}
	}
	WriteJSON(w, http.StatusOK, logs)
}

func parseJobListOptions(r *http.Request) (*model.JobListOptions, error) {
	q := r.URL.Query()
	employerID := strings.TrimSpace(q.Get("employer_id"))
	status := strings.TrimSpace(q.Get("status"))
	verification := strings.TrimSpace(q.Get("verification_status"))
	expired := strings.TrimSpace(q.Get("expired"))

	err := validation.New().
		Validate("employer_id", employerID, validation.Optional(validation.UUID("employer_id"))).
		Validate("status", status, validation.Optional(validation.Parses(job.ParseStatus))).
		Validate("verification_status", verification,
			validation.Optional(validation.Parses(job.ParseVerificationStatus))).
		Validate("expired", expired, validation.Optional(validation.Bool("expired"))).
		Err()
	if err != nil {
		return nil, err
	}

	limit, offset := ParseLimitOffset(r, defaultJobListLimit, maxJobListLimit)
	opts := &model.JobListOptions{Limit: limit, Offset: offset}
	if employerID != "" {
		opts.EmployerID = &employerID
	}
	if status != "" {
		s, _ := job.ParseStatus(status)
		opts.Status = &s
	}
	if verification != "" {
		v, _ := job.ParseVerificationStatus(verification)
		opts.VerificationStatus = &v
	}
	if expired != "" {
		b, _ := strconv.ParseBool(expired)
		opts.Expired = &b
	}
	return opts, nil
}
