package config

import "go.uber.org/fx"

// Module provides *Config loaded from env, .env file and flags.
var Module = fx.Provide(Load)
