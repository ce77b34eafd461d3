package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/internal/config"
)

// app carries what every subcommand needs once the environment is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gostudio",
		Short:         "Yoga studio booking API",
		Long:          "gostudio serves the session booking API and provides schema, seed and account tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newUserCmd(a),
		newTokenCmd(a),
		newVersionCmd(),
	)
	return root
}

// engine opens the configured backend and builds an Engine on it. The
// returned closer releases both.
func (a *app) engine(ctx context.Context, withAudit bool) (*goStudio.Engine, *backend, func(), error) {
	b, err := openBackend(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, nil, err
	}

	engineCfg := a.cfg.EngineConfig()
	builder := goStudio.New().WithStores(b.stores).WithLogger(a.logger)
	if withAudit {
		engineCfg.Audit.Enabled = true
		builder = builder.WithAuditSink(goStudio.NewSlogSink(a.logger.With("component", "audit"), slog.LevelInfo))
	}

	engine, err := builder.WithConfig(engineCfg).Build()
	if err != nil {
		_ = b.close()
		return nil, nil, nil, fmt.Errorf("build engine: %w", err)
	}

	closer := func() {
		engine.Close()
		if err := b.close(); err != nil {
			a.logger.Warn("close backend", "error", err)
		}
	}
	return engine, b, closer, nil
}
