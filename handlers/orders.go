package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/services"
	"serviceorders/session"
	"serviceorders/templates"
)

// redirect sends HTMX requests an HX-Redirect header and everything else a
// 302.
func redirect(e *core.RequestEvent, to string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", to)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, to)
}

// HandleOrderList renders every persisted order with its stored totals.
func HandleOrderList(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orders, err := env.Orders.List()
		if err != nil {
			env.Log.Error("order_list: could not list orders", zap.Error(err))
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		var data templates.OrderListData
		for _, o := range orders {
			data.Orders = append(data.Orders, templates.OrderListRow{
				ID:               o.ID,
				Number:           o.Number,
				ClientName:       o.ClientName,
				Title:            o.Title,
				ScheduledFor:     o.ScheduledFor,
				PayableTotal:     services.FormatCurrency(o.PayableTotal),
				Margin:           services.FormatPercent(o.TotalMargin),
				IsPositiveMargin: o.TotalMargin >= 0,
			})
		}

		var component = templates.OrderListPage(data)
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.OrderListContent(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleOrderNew opens a session on an empty order and redirects to its
// edit page.
func HandleOrderNew(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s := env.Sessions.New()
		return redirect(e, "/orders/"+s.ID()+"/edit")
	}
}

// HandleOrderEdit renders the edit page, opening the session from the draft
// or the stored rows when needed.
func HandleOrderEdit(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if orderID == "" {
			return e.String(http.StatusBadRequest, "Missing order ID")
		}

		s, err := env.Sessions.Open(orderID)
		if err != nil {
			if isNotFound(err) {
				return e.String(http.StatusNotFound, "Order not found")
			}
			env.Log.Error("order_edit: could not open order", zap.String("order", orderID), zap.Error(err))
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return renderOrderEdit(e, env.buildOrderEditData(s))
	}
}

// HandleOrderSave persists the open order. On failure the session keeps
// every edit so the user can retry.
func HandleOrderSave(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		s, err := env.Sessions.Save(orderID)
		if err != nil {
			if errors.Is(err, session.ErrNotOpen) {
				return ErrorToast(e, http.StatusNotFound, "Order is not open for editing")
			}
			if errors.Is(err, services.ErrInvalidPayload) {
				return ErrorToast(e, http.StatusUnprocessableEntity, "Order could not be saved: invalid data")
			}
			return ErrorToast(e, http.StatusInternalServerError, "Order could not be saved. Your changes are kept; please try again.")
		}

		SetToast(e, "success", "Order saved")
		return redirect(e, "/orders/"+s.ID()+"/edit")
	}
}

// HandleOrderCancel discards the open tree and its draft.
func HandleOrderCancel(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		env.Sessions.Cancel(e.Request.PathValue("id"))
		return redirect(e, "/orders")
	}
}

// HandleOrderDelete removes a persisted order.
func HandleOrderDelete(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if err := env.Sessions.Delete(orderID); err != nil {
			return env.respondError(e, "delete_order", err)
		}
		SetToast(e, "success", "Order deleted")
		return e.String(http.StatusOK, "")
	}
}

// HandleOrderTotals returns the current totals of the open order as JSON,
// with the autosave indicator.
func HandleOrderTotals(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := env.Sessions.Open(e.Request.PathValue("id"))
		if err != nil {
			if isNotFound(err) {
				return e.JSON(http.StatusNotFound, map[string]any{"error": "order not found"})
			}
			env.Log.Error("order_totals: could not open order", zap.Error(err))
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "internal error"})
		}

		var totals services.Totals
		s.Read(func(o *services.Order) { totals = o.Totals().Rounded() })
		status := s.AutosaveStatus()

		autosave := map[string]any{"state": status.State}
		if status.Err != nil {
			autosave["error"] = status.Err.Error()
		}
		if !status.At.IsZero() {
			autosave["at"] = status.At
		}
		return e.JSON(http.StatusOK, map[string]any{
			"totals":   totals,
			"dirty":    s.Dirty(),
			"autosave": autosave,
		})
	}
}
