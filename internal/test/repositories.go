package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
)

// OrderRepositoryStub keeps orders in a map unless overrides are configured.
type OrderRepositoryStub struct {
	CreateFn    func(context.Context, model.Order) (*model.Order, error)
	GetFn       func(context.Context, string) (*model.Order, error)
	ListFn      func(context.Context) ([]model.Order, error)
	ListByIDsFn func(context.Context, []string) ([]model.Order, error)
	SetStatusFn func(context.Context, string, model.OrderStatus) error

	mu          sync.Mutex
	Orders      map[string]model.Order
	Created     []model.Order
	StatusCalls []OrderStatusCall
	BatchCalls  [][]string
}

// OrderStatusCall stores information about SetStatus invocations.
type OrderStatusCall struct {
	ID     string
	Status model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized storage.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]model.Order)}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

// Create tracks invocations and stores the order when no override is set.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	s.Created = append(s.Created, order)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return nil, domainErrors.ErrDuplicateKey
	}
	order.CreatedAt = time.Unix(int64(len(s.Orders)), 0).UTC()
	s.Orders[order.ID] = order
	return &order, nil
}

// Get returns stored order or ErrNotFound.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		return &o, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored order in unspecified order.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		result = append(result, o)
	}
	return result, nil
}

// ListByIDs records requested ids and returns known orders.
func (s *OrderRepositoryStub) ListByIDs(ctx context.Context, ids []string) ([]model.Order, error) {
	s.mu.Lock()
	s.BatchCalls = append(s.BatchCalls, ids)
	s.mu.Unlock()
	if s.ListByIDsFn != nil {
		return s.ListByIDsFn(ctx, ids)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.Order{}
	for _, id := range ids {
		if o, ok := s.Orders[id]; ok {
			result = append(result, o)
		}
	}
	return result, nil
}

// SetStatus records update invocations and applies them to stored orders.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, id string, status model.OrderStatus) error {
	s.mu.Lock()
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{ID: id, Status: status})
	s.mu.Unlock()
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		o.Status = status
		s.Orders[id] = o
	}
	return nil
}

// SettingRepositoryStub stores settings in a map.
type SettingRepositoryStub struct {
	Values map[string]string
	GetErr error
	SetErr error
}

// Get returns stored value, default when absent or configured error.
func (s *SettingRepositoryStub) Get(ctx context.Context, key, def string) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	if v, ok := s.Values[key]; ok {
		return v, nil
	}
	return def, nil
}

// Set stores value unless an error is configured.
func (s *SettingRepositoryStub) Set(ctx context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	return nil
}
