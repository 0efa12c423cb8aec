package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/domain/repository"
)

const maxGeneratedIDAttempts = 3

// OrderNotifier hands a created order to the notification sink.
// Implementations must return immediately.
type OrderNotifier interface {
	Dispatch(order model.Order)
}

// OrderRecorder observes order lifecycle events.
type OrderRecorder interface {
	OrderSubmitted(serviceType string)
	OrderApproved()
}

type serverStatusReader interface {
	ServerStatus(ctx context.Context) (model.ServerStatus, error)
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders           repository.OrderRepository
	status           serverStatusReader
	notifier         OrderNotifier
	recorder         OrderRecorder
	rejectWhenClosed bool
	newID            func() (string, error)
}

// NewOrderUseCase constructs OrderUseCase. notifier and recorder may be nil.
func NewOrderUseCase(
	orders repository.OrderRepository,
	status *SettingsUseCase,
	notifier OrderNotifier,
	recorder OrderRecorder,
	rejectWhenClosed bool,
) *OrderUseCase {
	return &OrderUseCase{
		orders:           orders,
		status:           status,
		notifier:         notifier,
		recorder:         recorder,
		rejectWhenClosed: rejectWhenClosed,
		newID:            GenerateOrderID,
	}
}

// Submit validates input, persists a pending order and triggers the notification.
func (u *OrderUseCase) Submit(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	in, err := NormalizeOrderInput(in)
	if err != nil {
		return nil, err
	}

	if u.rejectWhenClosed {
		status, err := u.status.ServerStatus(ctx)
		if err != nil {
			return nil, err
		}
		if status == model.ServerStatusClosed {
			return nil, domainErrors.ErrOrdersClosed
		}
	}

	order, err := u.create(ctx, in)
	if err != nil {
		return nil, err
	}

	if u.recorder != nil {
		u.recorder.OrderSubmitted(order.ServiceType)
	}
	if u.notifier != nil {
		u.notifier.Dispatch(*order)
	}
	return order, nil
}

func (u *OrderUseCase) create(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	if in.ID != "" {
		return u.orders.Create(ctx, model.NewPendingOrder(in.ID, in))
	}

	for attempt := 0; attempt < maxGeneratedIDAttempts; attempt++ {
		id, err := u.newID()
		if err != nil {
			return nil, err
		}
		order, err := u.orders.Create(ctx, model.NewPendingOrder(id, in))
		if errors.Is(err, domainErrors.ErrDuplicateKey) {
			continue
		}
		return order, err
	}
	return nil, fmt.Errorf("allocate order id after %d attempts: %w", maxGeneratedIDAttempts, domainErrors.ErrDuplicateKey)
}

// Get returns order by id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// History returns known orders among ids, newest first. Duplicates and blanks are dropped.
func (u *OrderUseCase) History(ctx context.Context, ids []string) ([]model.Order, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []model.Order{}, nil
	}
	return u.orders.ListByIDs(ctx, unique)
}

// ListAll returns every order, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Approve marks a pending order approved. Approving twice is a no-op.
func (u *OrderUseCase) Approve(ctx context.Context, id string) error {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == model.OrderStatusApproved {
		return nil
	}
	if !order.Status.CanTransitionTo(model.OrderStatusApproved) {
		return fmt.Errorf("%w: order %s cannot be approved from %s", domainErrors.ErrInvalidInput, id, order.Status)
	}
	if err := u.orders.SetStatus(ctx, id, model.OrderStatusApproved); err != nil {
		return err
	}
	if u.recorder != nil {
		u.recorder.OrderApproved()
	}
	return nil
}
