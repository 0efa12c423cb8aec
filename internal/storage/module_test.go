package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/reelorders/internal/config"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/domain/repository"
	"github.com/polkiloo/reelorders/internal/storage/memory"
	"github.com/polkiloo/reelorders/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewFactoryFallsBackToMemory(t *testing.T) {
	factory, err := newFactory(factoryParams{
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", factory)
	}
}

func TestNewFactoryReportsInvalidDSN(t *testing.T) {
	_, err := newFactory(factoryParams{
		Ctx:    context.Background(),
		Config: &config.Config{DatabaseURI: ":://bad"},
		Logger: discardLogger(),
	})
	if err == nil {
		t.Fatal("expected dsn parse error")
	}
}

type closingFactory struct {
	repository.Factory
	closed bool
}

func (c *closingFactory) Close() { c.closed = true }

func TestRegisterLifecycleClosesFactory(t *testing.T) {
	lc := &test.LifecycleRecorder{}
	factory := &closingFactory{Factory: memory.New()}

	registerLifecycle(lc, factory)
	if len(lc.Hooks) != 1 {
		t.Fatalf("expected one hook, got %d", len(lc.Hooks))
	}
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !factory.closed {
		t.Fatal("expected factory to be closed on stop")
	}

	plain := &test.LifecycleRecorder{}
	registerLifecycle(plain, memory.New())
	if err := plain.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModuleProvidesRepositories(t *testing.T) {
	var (
		orders   repository.OrderRepository
		settings repository.SettingRepository
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(&config.Config{}),
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(discardLogger),
		Module,
		fx.Populate(&orders, &settings),
	)
	app.RequireStart()
	defer app.RequireStop()

	status, err := settings.Get(context.Background(), model.SettingServerStatus, "closed")
	if err != nil || status != "open" {
		t.Fatalf("expected seeded open status, got %q err=%v", status, err)
	}
	if orders == nil {
		t.Fatal("expected order repository")
	}
}
