package app

import (
	"context"
	"errors"
	"testing"

	"github.com/polkiloo/reelorders/internal/config"
	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/pkg/auth"
	"github.com/polkiloo/reelorders/internal/storage/memory"
	testhelpers "github.com/polkiloo/reelorders/internal/test"
	"github.com/polkiloo/reelorders/internal/usecase"
)

const adminCode = "2563123456789"

type facadeFixture struct {
	facade     *ShopFacade
	dispatcher *testhelpers.DispatcherStub
}

func newFacade(t *testing.T) *facadeFixture {
	t.Helper()
	store := memory.New()
	settings := usecase.NewSettingsUseCase(store.Settings())
	dispatcher := &testhelpers.DispatcherStub{}
	orders := usecase.NewOrderUseCase(store.Orders(), settings, dispatcher, nil, false)
	facade := NewShopFacade(orders, settings, auth.NewStaticAuthorizer(adminCode), store, &config.Config{Environment: "test"})
	return &facadeFixture{facade: facade, dispatcher: dispatcher}
}

func sampleInput(id string) model.OrderInput {
	return model.OrderInput{
		ID:               id,
		ServiceType:      "views",
		PackageID:        "views_basic",
		Quantity:         100000,
		Price:            99,
		TargetURL:        "https://instagram.com/reel/xyz",
		PaymentReference: "123456789012",
	}
}

func TestShopFacadeAuthorize(t *testing.T) {
	f := newFacade(t)
	if err := f.facade.Authorize(adminCode); err != nil {
		t.Fatalf("expected valid code to pass, got %v", err)
	}
	for _, code := range []string{"", "wrong", adminCode + " "} {
		if err := f.facade.Authorize(code); !errors.Is(err, domainErrors.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for %q, got %v", code, err)
		}
	}
}

func TestShopFacadeOrderLifecycle(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	created, err := f.facade.SubmitOrder(ctx, sampleInput("DIB-AB12CD"))
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if created.Status != model.OrderStatusPending || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected created order %+v", created)
	}
	if len(f.dispatcher.Dispatched()) != 1 {
		t.Fatal("expected notification dispatch")
	}

	order, err := f.facade.Order(ctx, "DIB-AB12CD")
	if err != nil || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order %+v err=%v", order, err)
	}

	if err := f.facade.ApproveOrder(ctx, "DIB-AB12CD"); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if err := f.facade.ApproveOrder(ctx, "DIB-AB12CD"); err != nil {
		t.Fatalf("re-approve returned error: %v", err)
	}

	order, _ = f.facade.Order(ctx, "DIB-AB12CD")
	if order.Status != model.OrderStatusApproved || !order.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected approved order %+v", order)
	}

	if err := f.facade.ApproveOrder(ctx, "NOPE"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShopFacadeListings(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	for _, id := range []string{"A1", "B2", "C3"} {
		if _, err := f.facade.SubmitOrder(ctx, sampleInput(id)); err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
	}

	all, err := f.facade.AllOrders(ctx)
	if err != nil || len(all) != 3 || all[0].ID != "C3" || all[2].ID != "A1" {
		t.Fatalf("unexpected list %+v err=%v", all, err)
	}

	history, err := f.facade.OrderHistory(ctx, []string{"A1", "ZZ", "C3"})
	if err != nil || len(history) != 2 || history[0].ID != "C3" || history[1].ID != "A1" {
		t.Fatalf("unexpected history %+v err=%v", history, err)
	}

	empty, err := f.facade.OrderHistory(ctx, []string{})
	if err != nil || len(empty) != 0 {
		t.Fatalf("unexpected empty history %+v err=%v", empty, err)
	}
}

func TestShopFacadeServerStatus(t *testing.T) {
	f := newFacade(t)
	ctx := context.Background()

	status, err := f.facade.ServerStatus(ctx)
	if err != nil || status != model.ServerStatusOpen {
		t.Fatalf("expected open, got %q err=%v", status, err)
	}
	if err := f.facade.SetServerStatus(ctx, model.ServerStatusClosed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _ = f.facade.ServerStatus(ctx)
	if status != model.ServerStatusClosed {
		t.Fatalf("expected closed, got %q", status)
	}
	if err := f.facade.SetServerStatus(ctx, "paused"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestShopFacadeReadyAndEnvironment(t *testing.T) {
	f := newFacade(t)
	if err := f.facade.Ready(context.Background()); err != nil {
		t.Fatalf("memory store must be ready, got %v", err)
	}
	if f.facade.Environment() != "test" {
		t.Fatalf("unexpected environment %q", f.facade.Environment())
	}
}
