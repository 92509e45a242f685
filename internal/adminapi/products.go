package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/webserver"
)

type quantityPayload struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (h *Handlers) registerProductRoutes(s *webserver.WebServer) {
	s.ApiGET("/products", h.listProducts)
	s.ApiGET("/products/:id", h.getProduct)
	s.ApiPOST("/products/:id/purchase", h.purchaseProduct)
	s.ApiPOST("/products/:id/restock", h.restockProduct)
}

func (h *Handlers) listProducts(c echo.Context) error {
	return ok(c, h.inv.List())
}

func (h *Handlers) getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := h.inv.Get(id)
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, p)
}

func (h *Handlers) purchaseProduct(c echo.Context) error {
	return h.applyQuantity(c, h.inv.Purchase)
}

func (h *Handlers) restockProduct(c echo.Context) error {
	return h.applyQuantity(c, h.inv.Restock)
}

func (h *Handlers) applyQuantity(c echo.Context, apply func(int64, int) (domain.Product, error)) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", inventory.ErrInvalidQuantity.Error(), err.Error())
	}
	p, err := apply(id, payload.Quantity)
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, p)
}

// storeFail maps store errors to status codes, keeping their messages.
func storeFail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
	case errors.Is(err, inventory.ErrOutOfStock):
		return fail(c, http.StatusConflict, "OUT_OF_STOCK", err.Error(), nil)
	case errors.Is(err, inventory.ErrInsufficientStock):
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
	}
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
}
