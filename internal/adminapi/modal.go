package adminapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/webestoque/internal/interact"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/webserver"
	"go.uber.org/zap"
)

func (h *Handlers) registerModalRoutes(s *webserver.WebServer) {
	s.POST("/products/:id/buy", h.openDialog(interact.KindBuy))
	s.POST("/products/:id/restock", h.openDialog(interact.KindRestock))
	s.POST("/products/:id/delete", h.openDialog(interact.KindDelete))
	s.GET("/modal/derived", h.modalDerived)
	s.POST("/modal/confirm", h.modalConfirm)
	s.POST("/modal/close", h.modalClose)
}

// openDialog starts the row action; the page then shows its dialog.
func (h *Handlers) openDialog(kind interact.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			webserver.AddFlash(c, webserver.FlashError, inventory.ErrNotFound.Error())
			return c.Redirect(http.StatusSeeOther, "/")
		}
		err = h.modal.Start(h.flowCtx, func(ctx context.Context) (interact.Outcome, error) {
			return h.actions.Run(ctx, kind, id)
		})
		if err != nil {
			zap.L().Debug("dialog not opened",
				zap.String("action", string(kind)),
				zap.Int64("product_id", id),
				zap.Error(err))
			webserver.AddFlash(c, webserver.FlashError, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func (h *Handlers) modalDerived(c echo.Context) error {
	return c.String(http.StatusOK, h.modal.Derived(c.QueryParam("quantity")))
}

func (h *Handlers) modalConfirm(c echo.Context) error {
	err := h.modal.Submit(c.Request().Context(), c.FormValue("quantity"))
	if err != nil && !errors.Is(err, interact.ErrNoDialog) {
		return err
	}
	if flash := h.modal.TakeFlash(); flash.Text != "" {
		webserver.AddFlash(c, flash.Kind, flash.Text)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) modalClose(c echo.Context) error {
	h.modal.Dismiss()
	return c.Redirect(http.StatusSeeOther, "/")
}
