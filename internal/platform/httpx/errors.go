package httpx

import (
	"errors"
	"net/http"

	"github.com/salespulse/salespulse/internal/sales"
)

// ErrValidation marks malformed request input.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to HTTP responses using RFC7807.
// The report calculators surface ErrNoData as a distinct catchable
// condition; it translates to 404 rather than a degenerate zero payload.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sales.ErrNoData):
		Problem(w, http.StatusNotFound, "No Data", err.Error())
	case errors.Is(err, sales.ErrInvalidRange):
		Problem(w, http.StatusBadRequest, "Invalid Range", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
