package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"serviceorders/services"
)

// HandleAddItem appends an empty service item.
func HandleAddItem(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "add_item", func(e *core.RequestEvent, o *services.Order) error {
			o.AddItem()
			return nil
		})
	}
}

// HandleDeleteItem removes an item with its materials and labor.
func HandleDeleteItem(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "delete_item", func(e *core.RequestEvent, o *services.Order) error {
			return o.RemoveItem(e.Request.PathValue("itemId"))
		})
	}
}

// HandlePatchItem updates the item fields present in the form.
func HandlePatchItem(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_item", func(e *core.RequestEvent, o *services.Order) error {
			itemID := e.Request.PathValue("itemId")
			fields := presentFields(e.Request.Form, itemFields)
			return atomically(o, func(o *services.Order) error {
				for _, f := range fields {
					if err := o.SetItemField(itemID, f, e.Request.Form.Get(string(f))); err != nil {
						return err
					}
				}
				return nil
			})
		})
	}
}

// HandleApplyService fills the item from the catalog service in
// "service_id", replacing its materials with the service's template.
func HandleApplyService(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "apply_service", func(e *core.RequestEvent, o *services.Order) error {
			return o.ApplyCatalogService(e.Request.PathValue("itemId"), e.Request.Form.Get("service_id"), env.Catalog)
		})
	}
}

// HandleAddMaterial appends a material line, filled from the catalog when
// "material_id" is given.
func HandleAddMaterial(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "add_material", func(e *core.RequestEvent, o *services.Order) error {
			itemID := e.Request.PathValue("itemId")
			materialID := e.Request.Form.Get("material_id")
			if materialID == "" {
				_, err := o.AddMaterial(itemID, "")
				return err
			}
			_, err := o.AddCatalogMaterial(itemID, materialID, env.Catalog)
			return err
		})
	}
}

func HandleDeleteMaterial(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "delete_material", func(e *core.RequestEvent, o *services.Order) error {
			return o.RemoveMaterial(e.Request.PathValue("itemId"), e.Request.PathValue("lineId"))
		})
	}
}

func HandlePatchMaterial(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_material", func(e *core.RequestEvent, o *services.Order) error {
			itemID, lineID := e.Request.PathValue("itemId"), e.Request.PathValue("lineId")
			fields := presentFields(e.Request.Form, materialFields)
			return atomically(o, func(o *services.Order) error {
				for _, f := range fields {
					if err := o.SetMaterialField(itemID, lineID, f, e.Request.Form.Get(string(f))); err != nil {
						return fmt.Errorf("material %s: %w", f, err)
					}
				}
				return nil
			})
		})
	}
}

func HandleApplyMaterial(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "apply_material", func(e *core.RequestEvent, o *services.Order) error {
			return o.ApplyMaterialSelection(e.Request.PathValue("itemId"), e.Request.PathValue("lineId"),
				e.Request.Form.Get("material_id"), env.Catalog)
		})
	}
}

// HandleAddLabor appends a labor line, priced from "staff_id" when given.
func HandleAddLabor(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "add_labor", func(e *core.RequestEvent, o *services.Order) error {
			itemID := e.Request.PathValue("itemId")
			staffID := e.Request.Form.Get("staff_id")
			if staffID == "" {
				_, err := o.AddLabor(itemID, "")
				return err
			}
			_, err := o.AddStaffLabor(itemID, staffID, env.Catalog)
			return err
		})
	}
}

func HandleDeleteLabor(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "delete_labor", func(e *core.RequestEvent, o *services.Order) error {
			return o.RemoveLabor(e.Request.PathValue("itemId"), e.Request.PathValue("lineId"))
		})
	}
}

func HandlePatchLabor(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "patch_labor", func(e *core.RequestEvent, o *services.Order) error {
			itemID, lineID := e.Request.PathValue("itemId"), e.Request.PathValue("lineId")
			fields := presentFields(e.Request.Form, laborFields)
			return atomically(o, func(o *services.Order) error {
				for _, f := range fields {
					if err := o.SetLaborField(itemID, lineID, f, e.Request.Form.Get(string(f))); err != nil {
						return fmt.Errorf("labor %s: %w", f, err)
					}
				}
				return nil
			})
		})
	}
}

func HandleApplyStaff(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return env.editOrder(e, "apply_staff", func(e *core.RequestEvent, o *services.Order) error {
			return o.ApplyStaffSelection(e.Request.PathValue("itemId"), e.Request.PathValue("lineId"),
				e.Request.Form.Get("staff_id"), env.Catalog)
		})
	}
}
