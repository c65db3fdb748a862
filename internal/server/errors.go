package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-recommender/internal/descriptors"
	"github.com/jonathan/resume-recommender/internal/evaluate"
	"github.com/jonathan/resume-recommender/internal/fetch"
	"github.com/jonathan/resume-recommender/internal/schema"
)

// ErrBadRequest indicates request validation failure
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStoreUnavailable indicates the server is running without a database
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "evaluation store is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var badRequest *ErrBadRequest
	var loadErr *descriptors.LoadError
	var schemaErr *schema.Error
	var apiErr *evaluate.APICallError
	var fetchErr *fetch.Error
	var unavailable *ErrStoreUnavailable

	switch {
	case errors.As(err, &badRequest), errors.As(err, &loadErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
