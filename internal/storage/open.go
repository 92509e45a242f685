package storage

import (
	"github.com/pkg/errors"
	"github.com/talkincode/webestoque/config"
)

// Open builds the backend selected by cfg.Storage.Type.
func Open(cfg *config.AppConfig) (KV, error) {
	switch cfg.Storage.Type {
	case "", "bolt":
		return OpenBolt(cfg.StoragePath(), cfg.Storage.Namespace)
	case "postgres":
		return OpenPostgres(cfg.Storage.Dsn, cfg.Storage.Namespace, cfg.System.Debug)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, errors.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}
