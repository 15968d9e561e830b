package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/target/jobmarket-api/internal/domain/credit"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

func TestRenderError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "wrapped ledger refusal", err: fmt.Errorf("create job: %w", &credit.ExhaustedError{}),
			wantStatus: http.StatusPaymentRequired, wantCode: ErrCodeNoAdCredit},
		{name: "validation", err: apperrors.Validation("no_vacancy must be at least 1"),
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "wrapped not found", err: fmt.Errorf("update job: %w", apperrors.NotFound("job x not found")),
			wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{name: "forbidden", err: apperrors.Forbidden(nil, "job must be approved"),
			wantStatus: http.StatusForbidden, wantCode: ErrCodeForbidden},
		{name: "foreign key", err: apperrors.ForeignKey("referenced skill does not exist"),
			wantStatus: http.StatusConflict, wantCode: ErrCodeConflict},
		{name: "deadline", err: fmt.Errorf("list jobs: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout, wantCode: ErrCodeTimeout},
		{name: "internal app error", err: apperrors.Internal("boom"),
			wantStatus: http.StatusInternalServerError, wantCode: ErrCodeTransactionFailed},
		{name: "plain error", err: fmt.Errorf("commit: %w", context.Canceled),
			wantStatus: http.StatusInternalServerError, wantCode: ErrCodeTransactionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)

			RenderError(rec, req, tt.err, discardLogger())

			body := requireErrorBody(t, rec, tt.wantStatus, tt.wantCode)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantStatus == http.StatusPaymentRequired {
				assert.Equal(t, ErrCodeNoAdCredit, body["code"])
				assert.Contains(t, body, "ad_credit")
				assert.Contains(t, body, "credit_expiry_at")
			}
		})
	}
}
