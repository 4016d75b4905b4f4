package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-bookingform/internal/config"
	"github.com/goliatone/go-bookingform/internal/httpapi"
	"github.com/goliatone/go-bookingform/internal/logger"
	"github.com/goliatone/go-bookingform/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bookingform-server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("bookingform-server", flag.ContinueOnError)
	addr := fs.String("addr", cfg.HTTPAddr, "listen address")
	schemaRef := fs.String("schema", cfg.SchemaPath, "form definition file or URL (bundled when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.New(cfg.Env, os.Stdout)
	log.Info("starting server", "env", cfg.Env, "addr", *addr)

	def, err := setup.LoadDefinition(ctx, nil, *schemaRef)
	if err != nil {
		return err
	}
	registry, fallback, err := setup.Searchers(setup.SearchConfig{
		Latency:   cfg.SearchLatency,
		PlacesURL: cfg.PlacesURL,
	})
	if err != nil {
		return err
	}

	renderers, err := setup.Renderers(cfg.TemplateDir)
	if err != nil {
		return err
	}

	api, err := httpapi.New(
		httpapi.WithRenderers(renderers),
		httpapi.WithLogger(log),
		httpapi.WithDefinition(def),
		httpapi.WithSearcher(fallback),
		httpapi.WithSearchRegistry(registry),
		httpapi.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", *addr, err)
	}
	return serve(ctx, log, listener, api.Routes(), cfg.ShutdownTimeout)
}

// serve runs handler on listener until ctx is done, then drains in-flight
// requests for at most grace.
func serve(ctx context.Context, log *logger.Logger, listener net.Listener, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "grace", grace.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
