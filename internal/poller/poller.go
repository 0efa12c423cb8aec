package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// DefaultInterval is the pause between two status fetches.
const DefaultInterval = 5 * time.Second

// StatusSource fetches the current state of an order.
type StatusSource interface {
	GetOrder(ctx context.Context, id string) (*model.Order, error)
}

// State of a watch session.
type State int

const (
	StateWatching State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateWatching {
		return "watching"
	}
	return "stopped"
}

// Poller starts watch sessions sharing one source and interval.
type Poller struct {
	source   StatusSource
	interval time.Duration
	logger   *slog.Logger
}

// New creates a poller; a non-positive interval falls back to DefaultInterval.
func New(source StatusSource, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, interval: interval, logger: logger}
}

// Session watches a single order until it is approved or stopped.
type Session struct {
	orderID    string
	onApproved func(model.Order)

	mu       sync.Mutex
	state    State
	last     model.OrderStatus
	approved *model.Order

	cancel context.CancelFunc
	done   chan struct{}
}

// Watch starts polling orderID. onApproved, when set, runs once after the
// session has stopped on approval and Done is closed, so it may call Stop.
func (p *Poller) Watch(ctx context.Context, orderID string, onApproved func(model.Order)) *Session {
	runCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		orderID:    orderID,
		onApproved: onApproved,
		state:      StateWatching,
		last:       model.OrderStatusPending,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go func() {
		approved := p.run(runCtx, s)
		s.cancel()
		close(s.done)
		if approved != nil && s.onApproved != nil {
			s.onApproved(*approved)
		}
	}()
	return s
}

// run polls until the order is approved or ctx ends and returns the approved order, if any.
func (p *Poller) run(ctx context.Context, s *Session) *model.Order {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.setStopped(nil)
			return nil
		case <-ticker.C:
		}

		order, err := p.source.GetOrder(ctx, s.orderID)
		if err != nil {
			if ctx.Err() != nil {
				s.setStopped(nil)
				return nil
			}
			p.logger.Warn("order status fetch failed",
				slog.String("order", s.orderID),
				slog.String("error", err.Error()),
			)
			continue
		}

		if !order.Status.Terminal() {
			s.setLast(order.Status)
			continue
		}

		s.setStopped(order)
		p.logger.Info("order approved", slog.String("order", s.orderID))
		return order
	}
}

func (s *Session) setLast(status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = status
}

func (s *Session) setStopped(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateStopped
	if order != nil {
		s.last = order.Status
		s.approved = order
	}
}

// OrderID returns the watched order id.
func (s *Session) OrderID() string {
	return s.orderID
}

// State reports whether the session is still polling.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastStatus returns the most recently observed status.
func (s *Session) LastStatus() model.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Approved returns the approved order once the session observed it.
func (s *Session) Approved() (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.approved == nil {
		return model.Order{}, false
	}
	return *s.approved, true
}

// Done is closed when the polling goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop cancels polling and waits for the goroutine to exit. It is safe to call repeatedly.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}
