package bootstrap

import (
	"context"

	"kapkurtar/internal/notify"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/config"
	"kapkurtar/internal/usecase/commands"
	"kapkurtar/internal/worker"

	"log/slog"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		notify.NewHub,
		notify.NewDispatcher,
		NewSweeper,
		worker.NewRunner,
	),
	fx.Invoke(startWorkers),
)

func NewSweeper(sweep commands.SweepCommands, clk clock.Clock, cfg config.SweepConfig, logger *slog.Logger) *worker.Sweeper {
	return worker.NewSweeper(sweep, clk, cfg.Interval, logger)
}

func startWorkers(lc fx.Lifecycle, runner *worker.Runner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runner.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return runner.Stop()
		},
	})
}
