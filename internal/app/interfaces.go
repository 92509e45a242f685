package app

import (
	"github.com/robfig/cron/v3"
	"github.com/talkincode/webestoque/config"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// InventoryProvider provides the inventory service and its renderer
type InventoryProvider interface {
	Inventory() *inventory.Service
	Binder() *render.Binder
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	ConfigProvider
	InventoryProvider
	SchedulerProvider

	// Backup copies the storage into the backup dir and prunes old copies.
	Backup() (string, error)
	Release()
}
