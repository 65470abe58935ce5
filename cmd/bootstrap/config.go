package bootstrap

import (
	"kapkurtar/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.IdentityConfig { return cfg.Identity },
		func(cfg config.Config) config.DiscoveryConfig { return cfg.Discovery },
		func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
	),
)
