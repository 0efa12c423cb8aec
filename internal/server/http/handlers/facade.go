package handlers

import (
	"context"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, in model.OrderInput) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	OrderHistory(ctx context.Context, ids []string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	ApproveOrder(ctx context.Context, id string) error
}

// SettingsFacade exposes the server status flag.
type SettingsFacade interface {
	ServerStatus(ctx context.Context) (model.ServerStatus, error)
	SetServerStatus(ctx context.Context, status model.ServerStatus) error
}

// HealthFacade reports service health.
type HealthFacade interface {
	Ready(ctx context.Context) error
	Environment() string
}

// AdminGate validates the admin credential.
type AdminGate interface {
	Authorize(credential string) error
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	OrderFacade
	SettingsFacade
	HealthFacade
	AdminGate
}
