package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// MigrateDiscountExclusivity repairs orders stored with both a percent and an
// absolute discount. The value of the stored mode is kept and the other is
// zeroed; orders without a mode keep the percentage.
// It returns the ids of the repaired orders; their stored totals still
// reflect both discounts and must be recalculated by the caller.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateDiscountExclusivity(app core.App) ([]string, error) {
	log := zap.L().Named("migrate")

	ordersCol, err := app.FindCollectionByNameOrId("service_orders")
	if err != nil {
		return nil, fmt.Errorf("migrate: could not find service_orders collection: %w", err)
	}

	conflicting, err := app.FindRecordsByFilter(
		ordersCol,
		"discount_percent > 0 && discount_absolute > 0",
		"",
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: could not query discounts: %w", err)
	}

	if len(conflicting) == 0 {
		return nil, nil
	}

	log.Info("migrate: found orders with both discount values", zap.Int("count", len(conflicting)))

	var fixed []string
	for _, order := range conflicting {
		if order.GetString("discount_mode") == "absolute" {
			order.Set("discount_percent", 0)
		} else {
			order.Set("discount_mode", "percent")
			order.Set("discount_absolute", 0)
		}
		if err := app.Save(order); err != nil {
			log.Warn("migrate: failed to repair discount", zap.String("order", order.Id), zap.Error(err))
			continue
		}
		fixed = append(fixed, order.Id)
	}

	log.Info("migrate: discount exclusivity migration complete", zap.Int("fixed", len(fixed)))
	return fixed, nil
}
