package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matiasleandrokruk/journalprompts/internal/infra/config"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/logging"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/telemetry"
	"github.com/matiasleandrokruk/journalprompts/internal/server"
	"github.com/matiasleandrokruk/journalprompts/internal/version"
)

const shutdownGrace = 10 * time.Second

type serveOptions struct {
	*rootOptions
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides PORT)")
	return cmd
}

// loadConfig applies command-line overrides on top of the environment.
// A zero port keeps PORT.
func loadConfig(opts *rootOptions, port int) (config.Config, error) {
	cfg := config.Load()
	if port != 0 {
		cfg.Port = port
	}
	if opts.logMode != "" {
		cfg.LogMode = opts.logMode
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts.rootOptions, opts.port)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, log, telemetry.Config{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: "journal-prompt-generator",
		Version:     version.Version,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Host
	srvCfg.Port = cfg.Port
	// A request may run the first attempt plus every retry to its deadline.
	if worst := cfg.GenerationTimeout*time.Duration(cfg.MaxRetries+1) + 5*time.Second; worst > srvCfg.WriteTimeout {
		srvCfg.WriteTimeout = worst
	}
	srv := server.NewServer(a.handler, srvCfg, log)

	log.Info("journal prompt service configured",
		zap.String("addr", srv.Addr()),
		zap.String("provider", cfg.LLMProvider),
		zap.Duration("generation_timeout", cfg.GenerationTimeout),
		zap.Float64("similarity_threshold", cfg.SimilarityThreshold),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.String("instruction", a.instruction),
		logging.Secret("gemini_api_key", cfg.GeminiAPIKey),
	)

	outcomes := a.stats.Subscribe(a.bus)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.stats.Start(gctx, outcomes)
		return nil
	})
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		err := srv.Shutdown(sctx)
		a.bus.Close()
		return err
	})
	return g.Wait()
}
