package verifications

import (
	"errors"
	"net/http"
)

// Domain errors for verification operations.
var (
	ErrNotFound  = errors.New("verification not found")
	ErrDuplicate = errors.New("verification already exists")
)

// MapHTTPStatus maps verification domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
