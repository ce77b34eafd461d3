package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/httpapi"
	"github.com/MrEthical07/goStudio/metrics/export/prometheus"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr      string
		seed      bool
		noMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.ListenAddr = addr
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Seed = seed
			}
			return a.serve(cmd.Context(), !noMigrate)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env: LISTEN_ADDR)")
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo data at startup (env: SEED)")
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "skip applying SQL migrations at startup")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, b, closeAll, err := a.engine(ctx, true)
	if err != nil {
		return err
	}
	defer closeAll()

	if migrate {
		if err := b.migrate(ctx, a.logger); err != nil {
			return err
		}
	}
	if a.cfg.Seed {
		if _, err := goStudio.Seed(ctx, engine, goStudio.DefaultSeed()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	report := engine.SecurityReport()
	a.logger.Info("engine ready",
		"signing_algorithm", report.SigningAlgorithm,
		"token_ttl", report.TokenTTL,
		"secret_bytes", report.SecretBytes,
		"argon2_memory_kib", report.Argon2.Memory,
		"argon2_time", report.Argon2.Time,
		"registration_enabled", report.RegistrationEnabled,
		"self_delete_enabled", report.SelfDeleteEnabled,
		"audit_enabled", report.AuditEnabled,
		"version", version,
	)
	for _, w := range report.Warnings {
		a.logger.Warn("security configuration", "warning", w)
	}

	router := httpapi.NewRouter(engine, httpapi.Options{
		Logger:      a.logger,
		Metrics:     prometheus.New(engine).Handler(),
		Health:      b.ping,
		CORSOrigins: a.cfg.CORSOrigins,
		RateLimit: httpapi.RateLimitConfig{
			RequestsPerSecond: a.cfg.RateLimitRPS,
			Burst:             a.cfg.RateLimitBurst,
		},
	})

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
