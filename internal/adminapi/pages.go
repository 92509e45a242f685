package adminapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/validate"
	"github.com/talkincode/webestoque/internal/webserver"
	"go.uber.org/zap"
)

const pageTitle = "Web Estoque"

func (h *Handlers) registerPageRoutes(s *webserver.WebServer) {
	s.GET("/", h.index)
	s.GET("/products/:id/edit", h.editProduct)
	s.POST("/products", h.submitProduct)
	s.POST("/form/cancel", h.cancelEdit)
}

// renderPage writes the whole document with the pending flash message.
func (h *Handlers) renderPage(c echo.Context, status int, form *render.Form) error {
	data := render.PageData{
		Title: pageTitle,
		Form:  form,
		Rows:  h.binder.Rows(h.inv.List()),
		Modal: h.modal.View(),
	}
	if kind, text := webserver.TakeFlash(c); text != "" {
		data.Flash = render.Hint{Kind: kind, Text: text}
	}
	var buf bytes.Buffer
	if err := h.binder.Page(&buf, data); err != nil {
		zap.L().Error("render page failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (h *Handlers) index(c echo.Context) error {
	return h.renderPage(c, http.StatusOK, render.NewForm())
}

func (h *Handlers) editProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		webserver.AddFlash(c, webserver.FlashError, inventory.ErrNotFound.Error())
		return c.Redirect(http.StatusSeeOther, "/")
	}
	p, err := h.inv.Get(id)
	if err != nil {
		webserver.AddFlash(c, webserver.FlashError, err.Error())
		return c.Redirect(http.StatusSeeOther, "/")
	}
	form := render.NewForm()
	form.Edit(p)
	return h.renderPage(c, http.StatusOK, form)
}

func (h *Handlers) submitProduct(c echo.Context) error {
	var raw validate.RawForm
	if err := c.Bind(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sub := inventory.Submission{
		Form:        raw,
		RemoveImage: c.FormValue("removeImage") != "",
	}
	if v := strings.TrimSpace(c.FormValue("id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return h.rejectSubmit(c, 0, raw, inventory.ErrNotFound)
		}
		sub.ID = id
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil && fh.Size > 0:
		file, err := fh.Open()
		if err != nil {
			return h.rejectSubmit(c, sub.ID, raw, inventory.ErrNotAnImage)
		}
		defer file.Close()
		sub.Image = file
	case err != nil && !errors.Is(err, http.ErrMissingFile):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.inv.Submit(c.Request().Context(), sub); err != nil {
		return h.rejectSubmit(c, sub.ID, raw, err)
	}
	msg := "Produto cadastrado com sucesso."
	if sub.ID != 0 {
		msg = "Produto atualizado com sucesso."
	}
	webserver.AddFlash(c, webserver.FlashSuccess, msg)
	return c.Redirect(http.StatusSeeOther, "/")
}

// rejectSubmit redraws the form with the submitted values and the error.
func (h *Handlers) rejectSubmit(c echo.Context, id int64, raw validate.RawForm, err error) error {
	zap.L().Debug("product form rejected", zap.Int64("product_id", id), zap.Error(err))
	form := render.NewForm()
	form.Rejected(id, raw, err)
	return h.renderPage(c, http.StatusUnprocessableEntity, form)
}

func (h *Handlers) cancelEdit(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}
