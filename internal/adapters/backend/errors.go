package backend

import (
	"errors"
	"net/http"

	"github.com/apakou/alx-poll/internal/core/domain"
)

// Upstream error codes worth distinguishing. 23xxx are SQLSTATE classes
// surfaced by the table API, PGRST116 is its zero-rows code.
const (
	codeUniqueViolation = "23505"
	codeFKViolation     = "23503"
	codeNoRows          = "PGRST116"
	codeRLSDenied       = "42501"
)

// translate maps a platform error to a domain error. onConflict is what a
// unique violation means at the call site (duplicate vote on the votes
// table, for example).
func translate(err error, onConflict error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case codeUniqueViolation:
		if onConflict != nil {
			return onConflict
		}
	case codeFKViolation:
		return domain.ErrInvalidOption
	case codeNoRows:
		return domain.ErrPollNotFound
	case codeRLSDenied:
		return domain.ErrForbidden
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrPollNotFound
	}

	return err
}
