package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Response is the JSON envelope of every /api reply.
type Response struct {
	Code    string      `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "SUCCESS", Msg: "ok", Data: data})
}

func fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Msg: msg, Details: details})
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
