package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/webestoque/internal/storage"
	"go.uber.org/zap"
)

const backupPrefix = "webestoque-"

// ErrBackupUnsupported is returned for backends without a file snapshot.
var ErrBackupUnsupported = errors.New("storage backend does not support backups")

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() error {
	cfg := a.appConfig
	loc, _ := time.LoadLocation(cfg.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if cfg.Backup.Enabled {
		if _, ok := a.kv.(storage.Backuper); !ok {
			zap.S().Warnf("backup disabled: %s storage has no snapshot", cfg.Storage.Type)
		} else if _, err := a.sched.AddFunc(cfg.Backup.Schedule, a.SchedBackupTask); err != nil {
			return errors.Wrapf(err, "invalid backup schedule %q", cfg.Backup.Schedule)
		}
	}

	a.sched.Start()
	return nil
}

// SchedBackupTask backs up the storage when the inventory changed since
// the last run.
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if !a.dirty.Load() {
		return
	}
	path, err := a.Backup()
	if err != nil {
		zap.L().Error("scheduled backup failed", zap.Error(err))
		return
	}
	zap.L().Info("scheduled backup written", zap.String("path", path))
}

// Backup writes a snapshot of the storage into the backup dir and keeps
// only the newest Backup.Keep copies (0 keeps all).
func (a *Application) Backup() (string, error) {
	b, ok := a.kv.(storage.Backuper)
	if !ok {
		return "", ErrBackupUnsupported
	}
	a.dirty.Store(false)

	dir := a.appConfig.GetBackupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	name := fmt.Sprintf("%s%s.db", backupPrefix, time.Now().Format("20060102T150405.000"))
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".backup-*")
	if err != nil {
		return "", errors.Wrap(err, "create backup file")
	}
	if _, err := b.Backup(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		a.dirty.Store(true)
		return "", errors.Wrap(err, "write backup")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "close backup")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "rename backup")
	}

	pruneBackups(dir, a.appConfig.Backup.Keep)
	return path, nil
}

func pruneBackups(dir string, keep int) {
	if keep <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		zap.L().Warn("list backups failed", zap.Error(err))
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for len(names) > keep {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			zap.L().Warn("remove old backup failed", zap.String("name", names[0]), zap.Error(err))
		}
		names = names[1:]
	}
}
