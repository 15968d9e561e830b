package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/target/jobmarket-api/internal/http/validation"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses common pagination params and clamps to sane bounds.
// - defLimit: default limit when not specified
// - maxLimit: maximum allowed limit (values > maxLimit are clamped to maxLimit).
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim := parseIntQuery(r, "limit", defLimit)
	off := parseIntQuery(r, "offset", 0)
	if lim < 1 {
		lim = 1
	}
	if lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

// jobIDFromPath reads the {id} path value of a job route. A malformed id cannot name a job,
// so it is answered as not found.
func jobIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if _, err := uuid.Parse(id); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: ErrCodeNotFound, Err: errors.New("job not found")})
		return "", false
	}
	return id, true
}

// partyIDFromPath reads the {id} path value of an employer or employee route. A malformed
// id is a client error.
func partyIDFromPath(w http.ResponseWriter, r *http.Request, kind string) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	field := kind + "_id"
	if err := validation.New().Validate(field, id, validation.Required(field), validation.UUID(field)).Err(); err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: ErrCodeValidation,
			Err:     fmt.Errorf("invalid %s id: %w", kind, err),
		})
		return "", false
	}
	return id, true
}
