// Package adminapi serves the inventory page, the row-action dialog, the
// JSON API and the exports.
package adminapi

import (
	"context"

	"github.com/talkincode/webestoque/internal/interact"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/webserver"
)

type Handlers struct {
	inv     *inventory.Service
	binder  *render.Binder
	modal   *interact.Modal
	actions *interact.Actions
	// flows outlive the request that opened the dialog
	flowCtx context.Context
}

func NewHandlers(ctx context.Context, inv *inventory.Service, binder *render.Binder) *Handlers {
	modal := interact.NewModal(binder.Money)
	return &Handlers{
		inv:     inv,
		binder:  binder,
		modal:   modal,
		actions: interact.NewActions(inv, modal),
		flowCtx: ctx,
	}
}

func (h *Handlers) Modal() *interact.Modal { return h.modal }

// Init registers every route on s.
func (h *Handlers) Init(s *webserver.WebServer) {
	h.registerPageRoutes(s)
	h.registerModalRoutes(s)
	h.registerProductRoutes(s)
	h.registerExportRoutes(s)
}
