// Package handler maps HTTP requests onto the ticket, import and banking
// services. Handlers depend on echo only through echo.Context.
package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/response"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

var bodyBinder = &echo.DefaultBinder{}

// bindRecord decodes the request body into an untyped record so that field
// type errors can be reported per field instead of failing the decode.
func bindRecord(c echo.Context) (map[string]any, error) {
	rec := map[string]any{}
	if err := bodyBinder.BindBody(c, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// fieldFailure writes a 400 for a validation error. Anything else is treated
// as a malformed request.
func fieldFailure(c echo.Context, err error) error {
	if fe, ok := validation.AsFieldError(err); ok {
		return response.ValidationFailed(c, fe.Error(), []*validation.FieldError{fe})
	}
	return response.BadRequest(c, "Invalid request", err.Error())
}

func invalidBody(c echo.Context, err error) error {
	return response.BadRequest(c, "Invalid request body", err.Error())
}
