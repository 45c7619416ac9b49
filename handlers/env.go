package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"serviceorders/session"
	"serviceorders/store"
)

// Env carries the dependencies shared by every handler.
type Env struct {
	App      core.App
	Orders   *store.OrderStore
	Catalog  *store.Catalog
	Drafts   *store.DraftStore
	Sessions *session.Manager
	Log      *zap.Logger
}

// NewEnv wires the stores and the session manager around app.
func NewEnv(app core.App, orders *store.OrderStore) *Env {
	drafts := store.NewDraftStore(app)
	return &Env{
		App:      app,
		Orders:   orders,
		Catalog:  store.NewCatalog(app),
		Drafts:   drafts,
		Sessions: session.NewManager(orders, drafts, orders.Policy()),
		Log:      zap.L().Named("handlers"),
	}
}
