package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/iwvelando/loan-amortisation/internal/server"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/currency"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	configPath string
	address    string
	logLevel   string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the schedule calculator over HTTP" }
func (*serveCmd) Usage() string {
	return `serve [-config <file>] [-address <host:port>] [-log-level <level>]

  Starts the JSON API. A missing server configuration file is not an error;
  defaults are used instead.
`
}

func (s *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configPath, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	f.StringVar(&s.address, "address", "", "listen address override, e.g. :8080")
	f.StringVar(&s.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func (s *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := server.LoadConfig(s.configPath)
	if err != nil {
		printFatal("failed to load server configuration at "+s.configPath, err)
		return subcommands.ExitFailure
	}
	if s.address != "" {
		cfg.Address = s.address
	}

	logger, err := initializeLogger(cfg.Logging, s.logLevel)
	if err != nil {
		printFatal("failed to initialize logger", err)
		return subcommands.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	table, rejected := currency.NewLocaleTable().With(cfg.Currencies)
	for _, locale := range rejected {
		logger.Warn("ignoring unknown currency code",
			zap.String("op", "main.serve"),
			zap.String("locale", locale),
		)
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg.RequestSizeBytes(), version, table),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	status := subcommands.ExitSuccess
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received", zap.String("op", "main.serve"))
	case err := <-errCh:
		logger.Error("server error", zap.String("op", "main.serve"), zap.Error(err))
		status = subcommands.ExitFailure
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.String("op", "main.serve"), zap.Error(err))
		status = subcommands.ExitFailure
	}
	return status
}
