package app

import (
	"context"

	"github.com/polkiloo/reelorders/internal/config"
	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/pkg/auth"
	"github.com/polkiloo/reelorders/internal/usecase"
)

// HealthChecker reports whether the order store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ShopFacade is the single entry point of the HTTP layer into the order service.
type ShopFacade struct {
	orders      *usecase.OrderUseCase
	settings    *usecase.SettingsUseCase
	gate        auth.Authorizer
	store       HealthChecker
	environment string
}

func NewShopFacade(orders *usecase.OrderUseCase, settings *usecase.SettingsUseCase, gate auth.Authorizer, store HealthChecker, cfg *config.Config) *ShopFacade {
	return &ShopFacade{orders: orders, settings: settings, gate: gate, store: store, environment: cfg.Environment}
}

func (f *ShopFacade) Authorize(credential string) error {
	if !f.gate.Authorize(credential) {
		return domainErrors.ErrUnauthorized
	}
	return nil
}

func (f *ShopFacade) SubmitOrder(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	return f.orders.Submit(ctx, in)
}

func (f *ShopFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *ShopFacade) OrderHistory(ctx context.Context, ids []string) ([]model.Order, error) {
	return f.orders.History(ctx, ids)
}

func (f *ShopFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *ShopFacade) ApproveOrder(ctx context.Context, id string) error {
	return f.orders.Approve(ctx, id)
}

func (f *ShopFacade) ServerStatus(ctx context.Context) (model.ServerStatus, error) {
	return f.settings.ServerStatus(ctx)
}

func (f *ShopFacade) SetServerStatus(ctx context.Context, status model.ServerStatus) error {
	return f.settings.SetServerStatus(ctx, status)
}

// Ready checks the order store.
func (f *ShopFacade) Ready(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}

func (f *ShopFacade) Environment() string {
	return f.environment
}
