package storage

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// BoltKV stores every key of the namespace in a single bbolt bucket.
type BoltKV struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path, namespace string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create bolt dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	kv := &BoltKV{db: db, bucket: []byte(namespace)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kv.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return kv, nil
}

func (b *BoltKV) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return ErrKeyNotFound
		}
		v := bk.Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// v is only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *BoltKV) Put(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}
		return bk.Put([]byte(key), value)
	})
}

// Backup writes a consistent snapshot of the database file to w.
func (b *BoltKV) Backup(w io.Writer) (int64, error) {
	var n int64
	err := b.db.View(func(tx *bolt.Tx) error {
		var err error
		n, err = tx.WriteTo(w)
		return err
	})
	return n, err
}

func (b *BoltKV) Close() error {
	return b.db.Close()
}
