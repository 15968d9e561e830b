package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/mocks"
	"github.com/target/jobmarket-api/internal/service"
)

const (
	testJobID      = "6f1d7a52-3c1e-4b0a-9a2e-0c6f3d2b1a01"
	testEmployerID = "3f0c5d0e-8c1b-4a8e-9d5a-1f2e3d4c5b6a"
	testEmployeeID = "9b2e4c1d-7a3f-4e5b-8c6d-2a1b0c9d8e7f"
)

// apiFixture wires real services over gomock repositories behind the full middleware chain.
type apiFixture struct {
	handler   http.Handler
	jobs      *mocks.MockJobRepository
	employers *mocks.MockEmployerRepository
	employees *mocks.MockEmployeeRepository
	interests *mocks.MockInterestRepository
	audit     *mocks.MockAuditRepository
	cache     *mocks.MockCacheRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &apiFixture{
		jobs:      mocks.NewMockJobRepository(ctrl),
		employers: mocks.NewMockEmployerRepository(ctrl),
		employees: mocks.NewMockEmployeeRepository(ctrl),
		interests: mocks.NewMockInterestRepository(ctrl),
		audit:     mocks.NewMockAuditRepository(ctrl),
		cache:     mocks.NewMockCacheRepository(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := service.NewAuditService(service.AuditServiceOptions{Repo: f.audit, Logger: logger})
	candidateCache := core.NewCandidateCache(core.CandidateCacheOptions{Cache: f.cache})

	services := RouterServices{
		Jobs: service.MustNewJobService(service.JobServiceOptions{
			Repo:       f.jobs,
			Candidates: candidateCache,
			Audit:      audit,
			Logger:     logger,
		}),
		Candidates: service.MustNewCandidateService(service.CandidateServiceOptions{
			Jobs:      f.jobs,
			Employees: f.employees,
			Cache:     candidateCache,
			Logger:    logger,
		}),
		Interests: service.MustNewInterestService(service.InterestServiceOptions{
			Repos: service.InterestRepositories{
				Interests: f.interests,
				Jobs:      f.jobs,
				Employers: f.employers,
				Employees: f.employees,
			},
			Logger: logger,
		}),
		Employers: service.MustNewEmployerService(service.EmployerServiceOptions{Repo: f.employers, Audit: audit}),
		Audit:     audit,
	}
	f.handler = NewHandler(services, HandlerConfig{Logger: logger})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireErrorBody(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) map[string]any {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, code, body["error"])
	require.NotEmpty(t, body["message"])
	return body
}
