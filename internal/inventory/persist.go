package inventory

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/storage"
	"go.uber.org/zap"
)

const (
	ProductsKey = "web-estoque:products:v1"
	NextIDKey   = "web-estoque:nextId:v1"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Persister reads and writes the collection and the id counter as two
// text entries of a key/value namespace.
type Persister struct {
	kv storage.KV
}

func NewPersister(kv storage.KV) *Persister {
	return &Persister{kv: kv}
}

// Save is best effort: failures are logged and never returned.
func (p *Persister) Save(products []domain.Product, nextID int64) {
	if products == nil {
		products = []domain.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		zap.L().Warn("encode products failed", zap.Error(err))
		return
	}
	if err := p.kv.Put(ProductsKey, data); err != nil {
		zap.L().Warn("persist products failed", zap.String("key", ProductsKey), zap.Error(err))
		return
	}
	if err := p.kv.Put(NextIDKey, []byte(strconv.FormatInt(nextID, 10))); err != nil {
		zap.L().Warn("persist next id failed", zap.String("key", NextIDKey), zap.Error(err))
	}
}

// Load never fails: malformed or missing data degrades to an empty
// collection, and a missing counter is recomputed from the stored ids.
func (p *Persister) Load() ([]domain.Product, int64) {
	products := []domain.Product{}
	if raw, err := p.kv.Get(ProductsKey); err == nil {
		var saved []domain.Product
		if err := json.Unmarshal(raw, &saved); err != nil {
			zap.L().Warn("stored products are unreadable, starting empty", zap.Error(err))
		} else if saved != nil {
			products = saved
		}
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		zap.L().Warn("read products failed", zap.Error(err))
	}

	nextID := MaxID(products) + 1
	if raw, err := p.kv.Get(NextIDKey); err == nil {
		if n, err := cast.ToInt64E(string(raw)); err == nil && n > 0 {
			nextID = n
		}
	}
	return products, nextID
}
