package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"serviceorders/collections"
	"serviceorders/config"
	"serviceorders/handlers"
	"serviceorders/logging"
	"serviceorders/session"
	"serviceorders/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	app := pocketbase.New()
	orders := store.NewOrderStore(app, cfg.Pricing.DeductionPolicy)
	env := handlers.NewEnv(app, orders)

	// Create collections, seed the catalog and repair legacy rows on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.Seed.Enabled {
			if err := collections.Seed(app); err != nil {
				logger.Warn("startup: seed data failed", zap.Error(err))
			}
		}
		repaired, err := collections.MigrateDiscountExclusivity(app)
		if err != nil {
			logger.Warn("startup: discount migration failed", zap.Error(err))
		}
		if len(repaired) > 0 {
			if _, err := orders.Recalculate(repaired); err != nil {
				logger.Warn("startup: recalculating repaired orders failed", zap.Error(err))
			}
		}
		return se.Next()
	})

	if cfg.Autosave.Enabled {
		autosaver := session.NewAutosaver(env.Sessions.Registry(), env.Drafts)
		app.Cron().MustAdd("order_autosave", cfg.Autosave.Cron, func() {
			autosaver.Run()
		})
	}

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		se.Router.BindFunc(handlers.RequestLogMiddleware(logger.Named("http")))

		// ── Orders ───────────────────────────────────────────────
		se.Router.GET("/orders", handlers.HandleOrderList(env))
		se.Router.GET("/orders/new", handlers.HandleOrderNew(env))
		se.Router.GET("/orders/{id}/edit", handlers.HandleOrderEdit(env))
		se.Router.GET("/orders/{id}/totals", handlers.HandleOrderTotals(env))
		se.Router.POST("/orders/{id}/save", handlers.HandleOrderSave(env))
		se.Router.POST("/orders/{id}/cancel", handlers.HandleOrderCancel(env))
		se.Router.DELETE("/orders/{id}", handlers.HandleOrderDelete(env))

		// Order-level fields
		se.Router.PATCH("/orders/{id}/header", handlers.HandlePatchHeader(env))
		se.Router.PATCH("/orders/{id}/discount", handlers.HandlePatchDiscount(env))
		se.Router.PATCH("/orders/{id}/expenses", handlers.HandlePatchExpenses(env))

		// Export
		se.Router.GET("/orders/{id}/export/excel", handlers.HandleOrderExportExcel(env))
		se.Router.GET("/orders/{id}/export/pdf", handlers.HandleOrderExportPDF(env))

		// ── Service items ────────────────────────────────────────
		se.Router.POST("/orders/{id}/items", handlers.HandleAddItem(env))
		se.Router.PATCH("/orders/{id}/items/{itemId}", handlers.HandlePatchItem(env))
		se.Router.DELETE("/orders/{id}/items/{itemId}", handlers.HandleDeleteItem(env))
		se.Router.POST("/orders/{id}/items/{itemId}/catalog", handlers.HandleApplyService(env))

		// Material lines
		se.Router.POST("/orders/{id}/items/{itemId}/materials", handlers.HandleAddMaterial(env))
		se.Router.PATCH("/orders/{id}/items/{itemId}/materials/{lineId}", handlers.HandlePatchMaterial(env))
		se.Router.DELETE("/orders/{id}/items/{itemId}/materials/{lineId}", handlers.HandleDeleteMaterial(env))
		se.Router.POST("/orders/{id}/items/{itemId}/materials/{lineId}/catalog", handlers.HandleApplyMaterial(env))

		// Labor lines
		se.Router.POST("/orders/{id}/items/{itemId}/labor", handlers.HandleAddLabor(env))
		se.Router.PATCH("/orders/{id}/items/{itemId}/labor/{lineId}", handlers.HandlePatchLabor(env))
		se.Router.DELETE("/orders/{id}/items/{itemId}/labor/{lineId}", handlers.HandleDeleteLabor(env))
		se.Router.POST("/orders/{id}/items/{itemId}/labor/{lineId}/catalog", handlers.HandleApplyStaff(env))

		// Redirect home to the order list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/orders")
		})

		return se.Next()
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "recalc-orders",
		Short: "Recompute and store the totals of every service order",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			n, err := orders.RecalculateAll()
			fmt.Fprintf(cmd.OutOrStdout(), "recalculated %d orders\n", n)
			return err
		},
	})

	if err := app.Start(); err != nil {
		logger.Fatal("app: stopped", zap.Error(err))
	}
}
