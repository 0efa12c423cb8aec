package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/config"
	"github.com/polkiloo/reelorders/internal/domain/repository"
	"github.com/polkiloo/reelorders/internal/metrics"
	"github.com/polkiloo/reelorders/internal/pkg/auth"
	"github.com/polkiloo/reelorders/internal/usecase"
	"github.com/polkiloo/reelorders/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newShopFacade,
		newHTTPServer,
		newNotificationDispatcher,
		func(d *worker.NotificationDispatcher) usecase.OrderNotifier { return d },
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Orders   *usecase.OrderUseCase
	Settings *usecase.SettingsUseCase
	Gate     auth.Authorizer
	Store    repository.Factory
	Config   *config.Config
}

func newShopFacade(p facadeParams) *ShopFacade {
	return NewShopFacade(p.Orders, p.Settings, p.Gate, p.Store, p.Config)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Notifier worker.Notifier
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics `optional:"true"`
}

func newNotificationDispatcher(p dispatcherParams) *worker.NotificationDispatcher {
	return worker.NewNotificationDispatcher(
		p.Notifier,
		p.Config.NotifyTimeout,
		p.Config.NotifyConcurrency,
		p.Logger,
		p.Metrics,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.NotificationDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting reelorders", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			if err := p.Dispatcher.Stop(shutdownCtx); err != nil {
				p.Logger.Warn("pending notifications abandoned", slog.String("error", err.Error()))
			}
			p.Logger.Info("reelorders stopped")
			return nil
		},
	})
}
