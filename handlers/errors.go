package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/services"
	"serviceorders/session"
	"serviceorders/store"
)

// respondError maps engine and store errors to a status code and an error
// toast. Unexpected errors are logged and answered with a generic message.
func (env *Env) respondError(e *core.RequestEvent, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidValue):
		return ErrorToast(e, http.StatusUnprocessableEntity, "Invalid value: "+err.Error())
	case errors.Is(err, services.ErrUnknownField):
		return ErrorToast(e, http.StatusBadRequest, "Unknown field")
	case errors.Is(err, services.ErrCatalogMiss):
		return ErrorToast(e, http.StatusNotFound, "Catalog entry not found")
	case errors.Is(err, services.ErrItemNotFound), errors.Is(err, services.ErrLineNotFound):
		return ErrorToast(e, http.StatusNotFound, "Item not found")
	case isNotFound(err):
		return ErrorToast(e, http.StatusNotFound, "Order not found")
	}
	env.Log.Error(op+": request failed", zap.Error(err))
	return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrOrderNotFound) || errors.Is(err, session.ErrNotOpen)
}
