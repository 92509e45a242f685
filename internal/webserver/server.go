package webserver

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/webestoque/config"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFS embed.FS

const sessionName = "webestoque_sess"

type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
	api  *echo.Group
}

type echoValidator struct {
	validator *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func NewWebServer(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &echoValidator{validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				zap.L().Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			zap.L().Debug("request", fields...)
			return nil
		},
	}))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	return &WebServer{cfg: cfg, root: e, api: e.Group("/api")}
}

func (s *WebServer) Echo() *echo.Echo { return s.root }

func (s *WebServer) GET(path string, h echo.HandlerFunc) { s.root.GET(path, h) }

func (s *WebServer) POST(path string, h echo.HandlerFunc) { s.root.POST(path, h) }

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc) { s.api.GET(path, h) }

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc) { s.api.POST(path, h) }

// Start serves until ctx is done, then shuts down gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Prepare to start web server %s", addr)
		errCh <- s.root.Start(addr)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}
