package webserver

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// AddFlash queues a message for the next page render.
func AddFlash(c echo.Context, kind, text string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		zap.L().Warn("session unavailable", zap.Error(err))
		return
	}
	sess.AddFlash(text, kind)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("save session failed", zap.Error(err))
	}
}

// TakeFlash pops the pending message, errors first.
func TakeFlash(c echo.Context) (kind, text string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return "", ""
	}
	for _, k := range []string{FlashError, FlashSuccess} {
		if flashes := sess.Flashes(k); len(flashes) > 0 {
			kind = k
			text, _ = flashes[len(flashes)-1].(string)
		}
		if text != "" {
			break
		}
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("save session failed", zap.Error(err))
	}
	return kind, text
}
