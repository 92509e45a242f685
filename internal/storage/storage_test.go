package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/webestoque/config"
)

func TestBoltKV_PutGetReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.db")

	kv, err := OpenBolt(path, "web-estoque")
	require.NoError(t, err)

	_, err = kv.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	require.NoError(t, kv.Put("a", []byte("1")))
	require.NoError(t, kv.Put("a", []byte("2")))
	require.NoError(t, kv.Close())

	kv, err = OpenBolt(path, "web-estoque")
	require.NoError(t, err)
	defer kv.Close()
	v, err := kv.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "2", string(v))
}

func TestBoltKV_NamespacesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	kv, err := OpenBolt(path, "one")
	require.NoError(t, err)
	require.NoError(t, kv.Put("k", []byte("v")))
	require.NoError(t, kv.Close())

	other, err := OpenBolt(path, "two")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Get("k")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestBoltKV_Backup(t *testing.T) {
	kv, err := OpenBolt(filepath.Join(t.TempDir(), "kv.db"), "ns")
	require.NoError(t, err)
	defer kv.Close()
	require.NoError(t, kv.Put("k", []byte("v")))

	var buf bytes.Buffer
	n, err := kv.Backup(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.NotZero(t, n)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	_, err := kv.Get("x")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	value := []byte("abc")
	require.NoError(t, kv.Put("x", value))
	value[0] = 'z'
	got, err := kv.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	kv.FailPut = errors.New("quota exceeded")
	assert.Error(t, kv.Put("x", []byte("d")))
}

func TestOpen(t *testing.T) {
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()

	cfg.Storage.Type = "memory"
	kv, err := Open(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	cfg.Storage.Type = "bolt"
	kv, err = Open(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &BoltKV{}, kv)
	require.NoError(t, kv.Close())

	cfg.Storage.Type = "etcd"
	_, err = Open(&cfg)
	assert.Error(t, err)
}
