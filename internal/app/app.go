package app

import (
	"os"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/webestoque/config"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	kv        storage.KV
	bus       EventBus.Bus
	inventory *inventory.Service
	binder    *render.Binder
	sched     *cron.Cron
	// set by inventory changes, cleared by a backup
	dirty atomic.Bool
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ InventoryProvider = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Inventory() *inventory.Service {
	return a.inventory
}

func (a *Application) Binder() *render.Binder {
	return a.binder
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init sets up logging, storage and the inventory service. withJobs starts
// the backup scheduler; one-shot CLI commands leave it off.
func (a *Application) Init(withJobs bool) error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	logger, err := NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	a.kv, err = storage.Open(cfg)
	if err != nil {
		return errors.Wrapf(err, "open %s storage", cfg.Storage.Type)
	}
	zap.S().Infof("Storage ready, type: %s", cfg.Storage.Type)

	money, err := render.NewMoney(cfg.System.Locale, cfg.System.Currency)
	if err != nil {
		return errors.Wrap(err, "currency config error")
	}
	a.binder, err = render.NewBinder(money)
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}

	a.bus = EventBus.New()
	if err := a.bus.SubscribeAsync(inventory.TopicChanged, a.onInventoryChanged, false); err != nil {
		return errors.Wrap(err, "subscribe inventory changes")
	}
	a.inventory = inventory.NewService(a.kv, a.bus)

	if withJobs {
		return a.initJob()
	}
	return nil
}

// NewLogger builds the zap logger; file output is rotated by lumberjack.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		return zapConfig.Build(zap.AddCaller())
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func (a *Application) onInventoryChanged(c inventory.Change) {
	a.dirty.Store(true)
	zap.L().Debug("inventory changed",
		zap.String("action", c.Action),
		zap.Int64("product_id", c.ProductID),
		zap.Int("quantity", c.Quantity))
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.bus != nil {
		a.bus.WaitAsync()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			zap.L().Warn("close storage failed", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
