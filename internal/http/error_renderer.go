package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/jobmarket-api/internal/domain/credit"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

// Error codes returned in the "error" field of JSON error bodies.
const (
	ErrCodeNoAdCredit        = "NO_AD_CREDIT"
	ErrCodeValidation        = "validation_failed"
	ErrCodeNotFound          = "not_found"
	ErrCodeForbidden         = "forbidden"
	ErrCodeConflict          = "conflict"
	ErrCodeTimeout           = "timeout"
	ErrCodeTransactionFailed = "transaction_failed"
)

// errorStatus maps AppError codes onto HTTP statuses.
//
//nolint:gochecknoglobals // static read-only lookup
var errorStatus = map[apperrors.ErrorCode]struct {
	status int
	code   string
}{
	apperrors.ErrCodeValidation: {http.StatusBadRequest, ErrCodeValidation},
	apperrors.ErrCodeNotFound:   {http.StatusNotFound, ErrCodeNotFound},
	apperrors.ErrCodeForbidden:  {http.StatusForbidden, ErrCodeForbidden},
	apperrors.ErrCodeConflict:   {http.StatusConflict, ErrCodeConflict},
	apperrors.ErrCodeForeignKey: {http.StatusConflict, ErrCodeConflict},
	apperrors.ErrCodeTimeout:    {http.StatusGatewayTimeout, ErrCodeTimeout},
}

// RenderError writes the JSON error response for a service error.
//
// A ledger refusal becomes 402 with the employer's balance and expiry. Typed application
// errors map to their status. Anything else is a failed transaction: the body carries a
// generic message and the cause is logged.
func RenderError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if ex, ok := credit.AsExhausted(err); ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusPaymentRequired,
			ErrCode: ErrCodeNoAdCredit,
			Err:     ex,
			Extra: map[string]any{
				"code":             ErrCodeNoAdCredit,
				"ad_credit":        ex.Balance,
				"credit_expiry_at": ex.ExpiresAt,
			},
		})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		WriteError(w, ErrorParams{Code: http.StatusGatewayTimeout, ErrCode: ErrCodeTimeout, Err: errors.New("request timed out")})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if m, ok := errorStatus[appErr.Code]; ok {
			WriteError(w, ErrorParams{Code: m.status, ErrCode: m.code, Err: errors.New(appErr.Message)})
			return
		}
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: ErrCodeTransactionFailed,
		Err:     errors.New("the operation could not be completed"),
	})
}
