package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/config"
)

// Module provides the admin Authorizer via fx.
var Module = fx.Provide(newAuthorizer)

type authorizerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// newAuthorizer prefers the bcrypt hash when both secret forms are configured.
func newAuthorizer(p authorizerParams) (Authorizer, error) {
	if p.Config.AdminSecretHash != "" {
		p.Logger.Info("admin access gate uses bcrypt hash")
		return NewBcryptAuthorizer(p.Config.AdminSecretHash)
	}
	return NewStaticAuthorizer(p.Config.AdminSecret), nil
}
