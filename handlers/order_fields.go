package handlers

import (
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"serviceorders/services"
)

// atomically runs fn against a clone first so a form carrying several fields
// is applied completely or not at all.
func atomically(o *services.Order, fn func(*services.Order) error) error {
	if err := fn(o.Clone()); err != nil {
		return err
	}
	return fn(o)
}

// presentFields returns the keys of form that appear in fields, in the order
// of fields.
func presentFields[F ~string](form url.Values, fields []F) []F {
	var out []F
	for _, f := range fields {
		if form.Has(string(f)) {
			out = append(out, f)
		}
	}
	return out
}

var (
	headerFields   = []services.HeaderField{services.HeaderClientName, services.HeaderTitle, services.HeaderNotes, services.HeaderScheduledFor}
	expenseFields  = []services.ExpenseField{services.ExpenseTravel, services.ExpenseParking, services.ExpenseToll, services.ExpenseOther, services.ExpenseOtherDescription}
	itemFields     = []services.ItemField{services.ItemDescription, services.ItemQuantity, services.ItemUnitPrice, services.ItemEstimatedMinutes}
	materialFields = []services.MaterialField{services.MaterialName, services.MaterialUnit, services.MaterialQuantity, services.MaterialUnitCost, services.MaterialUnitSalePrice}
	laborFields    = []services.LaborField{services.LaborName, services.LaborMinutes, services.LaborHourlyRate}
)

// HandlePatchHeader updates client, title, notes and schedule.
func HandlePatchHeader(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_header", func(e *core.RequestEvent, o *services.Order) error {
			fields := presentFields(e.Request.Form, headerFields)
			return atomically(o, func(o *services.Order) error {
				for _, f := range fields {
					if err := o.SetHeaderField(f, e.Request.Form.Get(string(f))); err != nil {
						return err
					}
				}
				return nil
			})
		})
	}
}

// HandlePatchExpenses updates the additional expenses.
func HandlePatchExpenses(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_expenses", func(e *core.RequestEvent, o *services.Order) error {
			fields := presentFields(e.Request.Form, expenseFields)
			return atomically(o, func(o *services.Order) error {
				for _, f := range fields {
					if err := o.SetExpense(f, e.Request.Form.Get(string(f))); err != nil {
						return err
					}
				}
				return nil
			})
		})
	}
}

// HandlePatchDiscount sets the discount from the "mode" and "value" form
// fields. Setting one mode clears the other.
func HandlePatchDiscount(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_discount", func(e *core.RequestEvent, o *services.Order) error {
			value := e.Request.Form.Get("value")
			if value == "" {
				value = "0"
			}
			switch services.DiscountMode(e.Request.Form.Get("mode")) {
			case services.DiscountAbsolute:
				return o.SetDiscountAbsolute(value)
			case services.DiscountPercent, "":
				return o.SetDiscountPercent(value)
			default:
				return services.ErrInvalidValue
			}
		})
	}
}
