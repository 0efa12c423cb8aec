package repository

import (
	"context"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Listings are ordered by creation time, newest first.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Order, error)
	SetStatus(ctx context.Context, id string, status model.OrderStatus) error
}
