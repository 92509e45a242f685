// Package storage provides namespaced key/value backends for the inventory.
package storage

import (
	"io"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is a flat key/value namespace holding text values.
type KV interface {
	// Get returns ErrKeyNotFound when the key was never written.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Backuper is implemented by backends that can stream a consistent copy of
// their whole database.
type Backuper interface {
	Backup(w io.Writer) (int64, error)
}
