package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/config"
	"github.com/polkiloo/reelorders/internal/domain/repository"
	"github.com/polkiloo/reelorders/internal/storage/memory"
	"github.com/polkiloo/reelorders/internal/storage/postgres"
)

// Module wires the order store and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.SettingRepository { return f.Settings() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type closer interface {
	Close()
}

// newFactory falls back to the in-memory store when no database is configured.
func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Warn("DATABASE_URI is empty, orders are kept in memory and lost on restart")
		return memory.New(), nil
	}
	st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if c, ok := factory.(closer); ok {
				c.Close()
			}
			return nil
		},
	})
}
