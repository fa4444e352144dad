// Package handler implements the HTTP endpoints. Domain and persistence
// failures are translated to transport responses in exactly one place
// (respondError) so every endpoint maps the error taxonomy the same way.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/repository"
)

// errForbidden marks a mutation attempted by a caller who is neither the
// resource's owner nor a system administrator. Distinct from not-found:
// the resource exists, the caller just may not touch it.
var errForbidden = errors.New("only the record owner or an administrator can modify this record")

// fieldError carries a single field-level validation message.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError aggregates field-level failures for a 422 response.
type validationError struct {
	fields []fieldError
}

func (e *validationError) Error() string { return "validation failed" }

func (e *validationError) add(field, message string) {
	e.fields = append(e.fields, fieldError{Field: field, Message: message})
}

func (e *validationError) ok() bool { return len(e.fields) == 0 }

// respondError maps a domain error to its transport response. Anything
// unrecognized is logged with full detail and surfaced as a generic 500,
// never leaking internals to the client.
func respondError(c echo.Context, err error) error {
	var ve *validationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  "one or more validation errors occurred",
			"errors": ve.fields,
		})
	case errors.Is(err, repository.ErrUserNameExists):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"detail": "User with specified user name already exists.",
		})
	case errors.Is(err, errForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrFacilityNotFound),
		errors.Is(err, repository.ErrTimeSlotNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		log.Printf("handler: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "an unexpected error occurred",
		})
	}
}
