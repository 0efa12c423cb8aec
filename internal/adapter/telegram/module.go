package telegram

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/config"
)

// Module exposes the order notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	if !p.Config.NotificationsEnabled() {
		p.Logger.Info("telegram notifications disabled")
		return Nop{}, nil
	}
	return NewHTTPClient(p.Config.TelegramAPIURL, p.Config.TelegramBotToken, p.Config.TelegramChatID, p.Logger)
}
