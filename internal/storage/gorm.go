package storage

import (
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/webestoque/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormKV keeps the namespace as rows of the kv_entry table.
type GormKV struct {
	db        *gorm.DB
	namespace string
}

// OpenPostgres connects to dsn and migrates the kv_entry table.
func OpenPostgres(dsn, namespace string, debug bool) (*GormKV, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return NewGormKV(db, namespace)
}

// NewGormKV wraps an existing connection.
func NewGormKV(db *gorm.DB, namespace string) (*GormKV, error) {
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "migrate kv tables")
	}
	return &GormKV{db: db, namespace: namespace}, nil
}

func (g *GormKV) Get(key string) ([]byte, error) {
	var entry domain.KVEntry
	err := g.db.Where("namespace = ? AND entry_key = ?", g.namespace, key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (g *GormKV) Put(key string, value []byte) error {
	now := time.Now()
	entry := domain.KVEntry{
		Namespace: g.namespace,
		EntryKey:  key,
		Value:     string(value),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (g *GormKV) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
