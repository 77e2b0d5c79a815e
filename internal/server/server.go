// Package server runs an http.Handler until the context is cancelled or the
// process receives SIGINT/SIGTERM, then shuts it down gracefully.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Config holds HTTP server configuration.
type Config struct {
	Address         string        `env:"APP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	onListen      func(net.Addr)
	shutdownHooks []func(context.Context) error
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithShutdownHook registers a function run after the HTTP server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(o *options) {
		if fn != nil {
			o.shutdownHooks = append(o.shutdownHooks, fn)
		}
	}
}

// WithOnListen is called with the bound address once the listener is open.
func WithOnListen(fn func(net.Addr)) Option {
	return func(o *options) {
		o.onListen = fn
	}
}

// Run serves handler and blocks until shutdown.
func Run(ctx context.Context, cfg Config, handler http.Handler, opts ...Option) error {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	if o.onListen != nil {
		o.onListen(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		o.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	o.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range o.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			o.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		o.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	o.logger.Info("shutdown completed")
	return nil
}
