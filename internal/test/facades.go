package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
)

// AdminCode is the credential accepted by GateStub by default.
const AdminCode = "2563123456789"

// GateStub accepts a single admin code.
type GateStub struct {
	Code string
}

// Authorize compares credential with Code or AdminCode.
func (g GateStub) Authorize(credential string) error {
	code := g.Code
	if code == "" {
		code = AdminCode
	}
	if credential == "" || credential != code {
		return domainErrors.ErrUnauthorized
	}
	return nil
}

// ShopFacadeStub provides controllable behaviour for every HTTP endpoint.
type ShopFacadeStub struct {
	GateStub

	SubmitFn    func(context.Context, model.OrderInput) (*model.Order, error)
	OrderFn     func(context.Context, string) (*model.Order, error)
	HistoryFn   func(context.Context, []string) ([]model.Order, error)
	AllOrdersFn func(context.Context) ([]model.Order, error)
	ApproveFn   func(context.Context, string) error
	StatusFn    func(context.Context) (model.ServerStatus, error)
	SetStatusFn func(context.Context, model.ServerStatus) error
	ReadyErr    error
	Env         string
}

// SampleOrder returns a pending order with fixed timestamps.
func SampleOrder(id string) model.Order {
	return model.Order{
		ID:               id,
		ServiceType:      "views",
		PackageID:        "views_basic",
		Quantity:         100000,
		Price:            99,
		TargetURL:        "https://instagram.com/reel/xyz",
		PaymentReference: "123456789012",
		Status:           model.OrderStatusPending,
		CreatedAt:        time.Unix(0, 0).UTC(),
	}
}

// SubmitOrder delegates to SubmitFn or echoes the input as a pending order.
func (s ShopFacadeStub) SubmitOrder(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, in)
	}
	id := in.ID
	if id == "" {
		id = "DIB-GEN001"
	}
	order := model.NewPendingOrder(id, in)
	return &order, nil
}

// Order returns a sample order unless overridden.
func (s ShopFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	order := SampleOrder(id)
	return &order, nil
}

// OrderHistory returns one sample order per id unless overridden.
func (s ShopFacadeStub) OrderHistory(ctx context.Context, ids []string) ([]model.Order, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, ids)
	}
	result := make([]model.Order, 0, len(ids))
	for _, id := range ids {
		result = append(result, SampleOrder(id))
	}
	return result, nil
}

// AllOrders returns a single sample order unless overridden.
func (s ShopFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{SampleOrder("DIB-AB12CD")}, nil
}

// ApproveOrder delegates to ApproveFn.
func (s ShopFacadeStub) ApproveOrder(ctx context.Context, id string) error {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	return nil
}

// ServerStatus returns open unless overridden.
func (s ShopFacadeStub) ServerStatus(ctx context.Context) (model.ServerStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx)
	}
	return model.ServerStatusOpen, nil
}

// SetServerStatus delegates to SetStatusFn.
func (s ShopFacadeStub) SetServerStatus(ctx context.Context, status model.ServerStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, status)
	}
	return nil
}

// Ready returns ReadyErr.
func (s ShopFacadeStub) Ready(context.Context) error {
	return s.ReadyErr
}

// Environment returns Env.
func (s ShopFacadeStub) Environment() string {
	return s.Env
}
