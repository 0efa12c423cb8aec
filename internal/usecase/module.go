package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/config"
	"github.com/polkiloo/reelorders/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewSettingsUseCase,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Settings *SettingsUseCase
	Notifier OrderNotifier
	Recorder OrderRecorder
	Config   *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Settings, p.Notifier, p.Recorder, p.Config.RejectOrdersWhenClosed)
}
