package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/test"
)

type orderFixture struct {
	repo       *test.OrderRepositoryStub
	settings   *test.SettingRepositoryStub
	dispatcher *test.DispatcherStub
	recorder   *test.RecorderStub
	uc         *OrderUseCase
}

func newOrderFixture(rejectWhenClosed bool, orders ...model.Order) *orderFixture {
	f := &orderFixture{
		repo:       test.NewOrderRepositoryStub(orders...),
		settings:   &test.SettingRepositoryStub{},
		dispatcher: &test.DispatcherStub{},
		recorder:   &test.RecorderStub{},
	}
	f.uc = NewOrderUseCase(f.repo, NewSettingsUseCase(f.settings), f.dispatcher, f.recorder, rejectWhenClosed)
	return f
}

func TestOrderUseCaseSubmitRejectsInvalidInput(t *testing.T) {
	f := newOrderFixture(false)
	in := validInput()
	in.PaymentReference = "123"

	if _, err := f.uc.Submit(context.Background(), in); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if len(f.repo.Created) != 0 {
		t.Fatal("create must not be called for invalid input")
	}
	if len(f.dispatcher.Dispatched()) != 0 {
		t.Fatal("no notification expected for invalid input")
	}
}

func TestOrderUseCaseSubmitPersistsPendingAndNotifies(t *testing.T) {
	f := newOrderFixture(false)

	order, err := f.uc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "DIB-AB12CD" || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}

	stored, err := f.uc.Get(context.Background(), "DIB-AB12CD")
	if err != nil || stored.Status != model.OrderStatusPending || stored.Quantity != 100000 {
		t.Fatalf("unexpected stored order %+v err=%v", stored, err)
	}

	dispatched := f.dispatcher.Dispatched()
	if len(dispatched) != 1 || dispatched[0].ID != "DIB-AB12CD" {
		t.Fatalf("expected one notification, got %+v", dispatched)
	}
	if len(f.recorder.Submitted) != 1 || f.recorder.Submitted[0] != "views" {
		t.Fatalf("unexpected recorded submissions %v", f.recorder.Submitted)
	}
}

func TestOrderUseCaseSubmitDuplicateClientID(t *testing.T) {
	f := newOrderFixture(false)
	if _, err := f.uc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.uc.Submit(context.Background(), validInput()); !errors.Is(err, domainErrors.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if len(f.dispatcher.Dispatched()) != 1 {
		t.Fatal("failed submission must not notify")
	}
}

func TestOrderUseCaseSubmitGeneratesID(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "DIB-TAKEN1"})
	generated := []string{"DIB-TAKEN1", "DIB-FRESH1"}
	f.uc.newID = func() (string, error) {
		id := generated[0]
		generated = generated[1:]
		return id, nil
	}

	in := validInput()
	in.ID = ""
	order, err := f.uc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "DIB-FRESH1" {
		t.Fatalf("expected retry with fresh id, got %s", order.ID)
	}
}

func TestOrderUseCaseSubmitGivesUpAfterCollisions(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "DIB-TAKEN1"})
	f.uc.newID = func() (string, error) { return "DIB-TAKEN1", nil }

	in := validInput()
	in.ID = ""
	if _, err := f.uc.Submit(context.Background(), in); !errors.Is(err, domainErrors.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if len(f.repo.Created) != maxGeneratedIDAttempts {
		t.Fatalf("expected %d attempts, got %d", maxGeneratedIDAttempts, len(f.repo.Created))
	}
}

func TestOrderUseCaseSubmitGeneratorError(t *testing.T) {
	f := newOrderFixture(false)
	f.uc.newID = func() (string, error) { return "", errors.New("entropy") }

	in := validInput()
	in.ID = ""
	if _, err := f.uc.Submit(context.Background(), in); err == nil || err.Error() != "entropy" {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestOrderUseCaseSubmitPropagatesStoreError(t *testing.T) {
	f := newOrderFixture(false)
	f.repo.CreateFn = func(context.Context, model.Order) (*model.Order, error) {
		return nil, errors.New("db down")
	}
	if _, err := f.uc.Submit(context.Background(), validInput()); err == nil || err.Error() != "db down" {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(f.dispatcher.Dispatched()) != 0 {
		t.Fatal("failed submission must not notify")
	}
}

func TestOrderUseCaseSubmitWhenClosed(t *testing.T) {
	accepting := newOrderFixture(false)
	accepting.settings.Values = map[string]string{model.SettingServerStatus: "closed"}
	if _, err := accepting.uc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("closed status is advisory by default, got %v", err)
	}

	rejecting := newOrderFixture(true)
	rejecting.settings.Values = map[string]string{model.SettingServerStatus: "closed"}
	if _, err := rejecting.uc.Submit(context.Background(), validInput()); !errors.Is(err, domainErrors.ErrOrdersClosed) {
		t.Fatalf("expected orders closed error, got %v", err)
	}

	rejecting.settings.Values[model.SettingServerStatus] = "open"
	if _, err := rejecting.uc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error when open: %v", err)
	}

	rejecting.settings.GetErr = errors.New("settings")
	in := validInput()
	in.ID = "DIB-OTHER1"
	if _, err := rejecting.uc.Submit(context.Background(), in); err == nil {
		t.Fatal("expected settings error")
	}
}

func TestOrderUseCaseSubmitWithoutNotifier(t *testing.T) {
	uc := NewOrderUseCase(test.NewOrderRepositoryStub(), nil, nil, nil, false)
	if _, err := uc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Approve(context.Background(), "DIB-AB12CD"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderUseCaseGetUnknown(t *testing.T) {
	f := newOrderFixture(false)
	if _, err := f.uc.Get(context.Background(), "NOPE"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseHistory(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "A"}, model.Order{ID: "B"})

	orders, err := f.uc.History(context.Background(), []string{"A", "", "A", "X", "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if got := strings.Join(f.repo.BatchCalls[0], ","); got != "A,X,B" {
		t.Fatalf("expected de-duplicated ids, got %s", got)
	}

	orders, err = f.uc.History(context.Background(), nil)
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty non-nil result, got %v err=%v", orders, err)
	}
	if len(f.repo.BatchCalls) != 1 {
		t.Fatal("empty history must not query the store")
	}
}

func TestOrderUseCaseListAll(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "A"})
	orders, err := f.uc.ListAll(context.Background())
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected result %v err=%v", orders, err)
	}
}

func TestOrderUseCaseApprove(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "DIB-AB12CD", Status: model.OrderStatusPending})

	if err := f.uc.Approve(context.Background(), "DIB-AB12CD"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.uc.Approve(context.Background(), "DIB-AB12CD"); err != nil {
		t.Fatalf("re-approve must be a no-op, got %v", err)
	}

	order, _ := f.uc.Get(context.Background(), "DIB-AB12CD")
	if order.Status != model.OrderStatusApproved {
		t.Fatalf("expected approved, got %s", order.Status)
	}
	if len(f.repo.StatusCalls) != 1 {
		t.Fatalf("expected a single status write, got %d", len(f.repo.StatusCalls))
	}
	if f.recorder.Approved != 1 {
		t.Fatalf("expected one recorded approval, got %d", f.recorder.Approved)
	}
}

func TestOrderUseCaseApproveErrors(t *testing.T) {
	f := newOrderFixture(false, model.Order{ID: "DIB-AB12CD", Status: model.OrderStatusPending})

	if err := f.uc.Approve(context.Background(), "UNKNOWN"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	f.repo.SetStatusFn = func(context.Context, string, model.OrderStatus) error { return errors.New("write") }
	if err := f.uc.Approve(context.Background(), "DIB-AB12CD"); err == nil {
		t.Fatal("expected store error")
	}
	if f.recorder.Approved != 0 {
		t.Fatal("failed approval must not be recorded")
	}

	broken := newOrderFixture(false, model.Order{ID: "X", Status: model.OrderStatus("archived")})
	if err := broken.uc.Approve(context.Background(), "X"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
}
