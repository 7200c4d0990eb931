package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/kova98/newsdigest/config"
	"github.com/kova98/newsdigest/digest"
	"github.com/kova98/newsdigest/handlers"
	"github.com/kova98/newsdigest/metrics"
	"github.com/kova98/newsdigest/notifiers"
	"github.com/kova98/newsdigest/scheduler"
	"github.com/kova98/newsdigest/sources"
)

func main() {
	cfg := config.Load()

	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	client, err := sources.NewHTTPClient(cfg.ProxyURL)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}

	contentAPI := sources.NewContentAPI(logger, client, cfg.Endpoint, cfg.APIKey)
	mailer := notifiers.NewMailer(
		logger,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.Sender,
	)
	pipeline := digest.NewPipeline(logger, contentAPI, mailer)
	m := metrics.New()
	runner := scheduler.NewRunner(logger, pipeline, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.RunMode == config.RunModeOnce {
		runOnce(ctx, runner, m, cfg.PushgatewayURL)
		return
	}

	if err := serve(ctx, logger, cfg, runner, m); err != nil {
		slog.Error("digest service stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, runner *scheduler.Runner, m *metrics.Metrics, pushgatewayURL string) {
	runner.TryRun(ctx)

	if pushgatewayURL == "" {
		return
	}
	pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Push(pushCtx, pushgatewayURL); err != nil {
		slog.Error("failed to push metrics", "error", err)
	}
}

func serve(ctx context.Context, logger *slog.Logger, cfg config.AppConfig, runner *scheduler.Runner, m *metrics.Metrics) error {
	sched, err := scheduler.New(logger, cfg.Schedule, runner)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.NewRouter(logger, runner, m.Handler(), cfg.TriggerKey),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("Starting server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
