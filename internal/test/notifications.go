package test

import (
	"context"
	"sync"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// DispatcherStub records dispatched orders.
type DispatcherStub struct {
	mu     sync.Mutex
	Orders []model.Order
}

// Dispatch stores the order.
func (s *DispatcherStub) Dispatch(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append(s.Orders, order)
}

// Dispatched returns a snapshot of recorded orders.
func (s *DispatcherStub) Dispatched() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.Orders...)
}

// NotifierStub delivers notifications through an optional override.
type NotifierStub struct {
	NotifyFn func(context.Context, model.Order) error
	mu       sync.Mutex
	Notified []model.Order
}

// Notify records the order and returns the override result.
func (s *NotifierStub) Notify(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	s.Notified = append(s.Notified, order)
	s.mu.Unlock()
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, order)
	}
	return nil
}

// Count returns the number of Notify calls.
func (s *NotifierStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Notified)
}

// RecorderStub counts order lifecycle events.
type RecorderStub struct {
	mu        sync.Mutex
	Submitted []string
	Approved  int
}

// OrderSubmitted records the service type.
func (s *RecorderStub) OrderSubmitted(serviceType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted = append(s.Submitted, serviceType)
}

// OrderApproved increments the approval count.
func (s *RecorderStub) OrderApproved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Approved++
}
