package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/domain/repository"
)

// Storage keeps orders and settings in process memory.
// It is used for local development and tests when no database is configured.
type Storage struct {
	mu       sync.RWMutex
	orders   map[string]storedOrder
	settings map[string]string
	seq      uint64
	now      func() time.Time
}

type storedOrder struct {
	order model.Order
	seq   uint64
}

type orderRepository struct {
	storage *Storage
}

type settingRepository struct {
	storage *Storage
}

// Option customizes Storage.
type Option func(*Storage)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// New creates empty storage with the server status seeded as open.
func New(opts ...Option) *Storage {
	s := &Storage{
		orders:   make(map[string]storedOrder),
		settings: map[string]string{model.SettingServerStatus: string(model.DefaultServerStatus)},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingRepository {
	return &settingRepository{storage: s}
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}

func (r *orderRepository) Create(_ context.Context, order model.Order) (*model.Order, error) {
	if err := checkRequired(order); err != nil {
		return nil, err
	}

	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return nil, fmt.Errorf("%w: order %s", domainErrors.ErrDuplicateKey, order.ID)
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	order.CreatedAt = s.now()
	s.seq++
	s.orders[order.ID] = storedOrder{order: order, seq: s.seq}

	return &order, nil
}

func (r *orderRepository) Get(_ context.Context, id string) (*model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order := stored.order
	return &order, nil
}

func (r *orderRepository) List(_ context.Context) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]storedOrder, 0, len(s.orders))
	for _, stored := range s.orders {
		items = append(items, stored)
	}
	return newestFirst(items), nil
}

func (r *orderRepository) ListByIDs(_ context.Context, ids []string) ([]model.Order, error) {
	if len(ids) == 0 {
		return []model.Order{}, nil
	}

	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	items := make([]storedOrder, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if stored, ok := s.orders[id]; ok {
			items = append(items, stored)
		}
	}
	return newestFirst(items), nil
}

func (r *orderRepository) SetStatus(_ context.Context, id string, status model.OrderStatus) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil
	}
	stored.order.Status = status
	s.orders[id] = stored
	return nil
}

func (r *settingRepository) Get(_ context.Context, key, def string) (string, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.settings[key]; ok {
		return value, nil
	}
	return def, nil
}

func (r *settingRepository) Set(_ context.Context, key, value string) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return nil
}

// newestFirst sorts by creation time descending; insertion order breaks ties.
func newestFirst(items []storedOrder) []model.Order {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].order.CreatedAt.Equal(items[j].order.CreatedAt) {
			return items[i].order.CreatedAt.After(items[j].order.CreatedAt)
		}
		return items[i].seq > items[j].seq
	})
	result := make([]model.Order, len(items))
	for i, stored := range items {
		result[i] = stored.order
	}
	return result
}

// checkRequired mirrors the NOT NULL and CHECK constraints of the orders table.
func checkRequired(o model.Order) error {
	switch {
	case o.ID == "":
		return fmt.Errorf("%w: id is required", domainErrors.ErrConstraintViolation)
	case o.ServiceType == "", o.PackageID == "", o.TargetURL == "", o.PaymentReference == "":
		return fmt.Errorf("%w: missing required order field", domainErrors.ErrConstraintViolation)
	case o.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", domainErrors.ErrConstraintViolation)
	case o.Price < 0:
		return fmt.Errorf("%w: price must not be negative", domainErrors.ErrConstraintViolation)
	}
	return nil
}
