package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/ladders-display/internal/config"
	"github.com/DoyleJ11/ladders-display/internal/httpapi"
	"github.com/DoyleJ11/ladders-display/internal/logging"
	"github.com/DoyleJ11/ladders-display/internal/render"
	"github.com/DoyleJ11/ladders-display/internal/session"
	"github.com/DoyleJ11/ladders-display/internal/transport"
	"github.com/DoyleJ11/ladders-display/internal/tui"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.DevLog)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting display client",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("reconnect_delay", cfg.ReconnectDelay),
		zap.Duration("step_interval", cfg.StepInterval),
	)

	sess := session.New(ctx, session.Options{
		Dialer:         &transport.WebsocketDialer{URL: cfg.Endpoint, Logger: log.Named("transport")},
		ReconnectDelay: cfg.ReconnectDelay,
		StepInterval:   cfg.StepInterval,
		Logger:         log.Named("session"),
	})
	printer := render.NewPrinter(cfg.Locale)

	g, gctx := errgroup.WithContext(ctx)

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.SetupRoutes(sess, httpapi.Options{Printer: printer, Logger: log.Named("http")}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("listening", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
	}

	if cfg.TUI {
		g.Go(func() error {
			// Quitting the terminal ends the process.
			defer stop()
			return tui.Run(gctx, sess, printer, log.Named("tui"))
		})
	}

	<-gctx.Done()
	log.Info("shutting down")

	shutdownErr := shutdown(srv, sess)
	return multierr.Append(g.Wait(), shutdownErr)
}

func shutdown(srv *http.Server, sess *session.Session) error {
	var err error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = multierr.Append(err, srv.Shutdown(ctx))
	}
	sess.Close()
	return err
}
