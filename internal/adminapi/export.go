package adminapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/webestoque/internal/export"
	"github.com/talkincode/webestoque/internal/webserver"
	"go.uber.org/zap"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) registerExportRoutes(s *webserver.WebServer) {
	s.GET("/products.csv", h.exportCSV)
	s.GET("/products.xlsx", h.exportXLSX)
}

func (h *Handlers) exportCSV(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, h.inv.List()); err != nil {
		zap.L().Error("export csv failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handlers) exportXLSX(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.inv.List()); err != nil {
		zap.L().Error("export xlsx failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
