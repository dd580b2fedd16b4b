// Package apierror maps domain errors onto huma status errors.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/codec"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// From returns a 400 for validation failures, a 422 for rejected import
// documents and a 500 carrying msg for anything else.
func From(err error, msg string) huma.StatusError {
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Error(), &huma.ErrorDetail{
			Location: "body." + validationErr.Field,
			Message:  validationErr.Reason,
		})
	}

	var formatErr *codec.FormatError
	if errors.As(err, &formatErr) {
		return huma.Error422UnprocessableEntity(formatErr.Error())
	}

	return huma.NewError(http.StatusInternalServerError, msg, err)
}
