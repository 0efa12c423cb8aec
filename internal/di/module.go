package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/adapter/telegram"
	"github.com/polkiloo/reelorders/internal/app"
	"github.com/polkiloo/reelorders/internal/config"
	"github.com/polkiloo/reelorders/internal/logger"
	"github.com/polkiloo/reelorders/internal/metrics"
	"github.com/polkiloo/reelorders/internal/pkg/auth"
	"github.com/polkiloo/reelorders/internal/server/http/router"
	"github.com/polkiloo/reelorders/internal/storage"
	"github.com/polkiloo/reelorders/internal/usecase"
	"github.com/polkiloo/reelorders/internal/worker"
)

// Module assembles the order service graph. opts are appended last so tests can fx.Replace parts.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		metrics.Module,
		telegram.Module,
		usecase.Module,
		fx.Provide(
			func(n telegram.Notifier) worker.Notifier { return n },
			func(m *metrics.Metrics) usecase.OrderRecorder { return m },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
