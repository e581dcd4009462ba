package http

import (
	"errors"
	"net/http"

	"broker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError translates the core error taxonomy to HTTP. Validation maps to
// 400, ownership and role failures to 403 (authentication itself is handled
// by the middleware with 401), missing entities to 404. InvalidState and
// Conflict both map to 409 but keep distinct codes: clients retry a conflict,
// not an invalid state.
func respondError(c echo.Context, err error) error {
	var status int
	var code string

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrUnauthorized):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrInvalidState):
		status, code = http.StatusConflict, "invalid_state"
	case errors.Is(err, errs.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, "unavailable"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	return c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
