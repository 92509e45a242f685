package inventory

import (
	"context"
	"io"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/storage"
	"github.com/talkincode/webestoque/internal/validate"
	"go.uber.org/zap"
)

// TopicChanged is published after every successful mutation with a Change.
const TopicChanged = "inventory:changed"

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionBuy     = "buy"
	ActionRestock = "restock"
)

// Change describes a committed mutation.
type Change struct {
	Action    string
	ProductID int64
	Quantity  int
}

// Service owns the store for the process lifetime and writes every
// successful mutation through to the persister.
type Service struct {
	mu        sync.Mutex // serializes mutate+save so snapshots land in order
	store     *Store
	persister *Persister
	bus       EventBus.Bus
}

// NewService rehydrates the store from kv.
func NewService(kv storage.KV, bus EventBus.Bus) *Service {
	if bus == nil {
		bus = EventBus.New()
	}
	persister := NewPersister(kv)
	products, nextID := persister.Load()
	zap.L().Info("inventory loaded", zap.Int("products", len(products)), zap.Int64("next_id", nextID))
	return &Service{
		store:     NewStore(products, nextID),
		persister: persister,
		bus:       bus,
	}
}

func (s *Service) Bus() EventBus.Bus { return s.bus }

func (s *Service) commit(c Change) {
	s.persister.Save(s.store.Snapshot())
	s.bus.Publish(TopicChanged, c)
}

func (s *Service) Create(fields domain.Fields, imageDataURL string) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.store.Create(fields, imageDataURL)
	s.commit(Change{Action: ActionCreate, ProductID: p.ID, Quantity: p.Quantity})
	return p
}

func (s *Service) Update(id int64, patch domain.Patch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.store.Update(id, patch)
	if err != nil {
		return p, err
	}
	s.commit(Change{Action: ActionUpdate, ProductID: id, Quantity: p.Quantity})
	return p, nil
}

func (s *Service) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.commit(Change{Action: ActionDelete, ProductID: id})
	return nil
}

func (s *Service) Purchase(id int64, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.store.Purchase(id, qty)
	if err != nil {
		return p, err
	}
	s.commit(Change{Action: ActionBuy, ProductID: id, Quantity: qty})
	return p, nil
}

func (s *Service) Restock(id int64, qty int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.store.Restock(id, qty)
	if err != nil {
		return p, err
	}
	s.commit(Change{Action: ActionRestock, ProductID: id, Quantity: qty})
	return p, nil
}

func (s *Service) Get(id int64) (domain.Product, error) { return s.store.Get(id) }

func (s *Service) List() []domain.Product { return s.store.List() }

// Submission is a product form post. ID 0 creates a new product.
type Submission struct {
	ID          int64
	Form        validate.RawForm
	Image       io.Reader
	RemoveImage bool
}

// Submit validates the form, waits for the optional image to be read and
// only then applies the create or update.
func (s *Service) Submit(ctx context.Context, sub Submission) (domain.Product, error) {
	fields, err := validate.Validate(sub.Form)
	if err != nil {
		return domain.Product{}, err
	}

	var image string
	if sub.Image != nil {
		res := ReadImage(ctx, sub.Image, MaxImageSize)
		if res.Err != nil {
			return domain.Product{}, res.Err
		}
		image = res.DataURL
	}

	if sub.ID == 0 {
		return s.Create(fields, image), nil
	}
	patch := domain.PatchFromFields(fields)
	switch {
	case sub.RemoveImage:
		empty := ""
		patch.ImageDataURL = &empty
	case image != "":
		patch.ImageDataURL = &image
	}
	return s.Update(sub.ID, patch)
}
