package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"roomdesk/internal/backend"
	"roomdesk/internal/backend/tracer"
	"roomdesk/internal/platform/config"
	"roomdesk/internal/platform/health"
	"roomdesk/internal/platform/logger"
	"roomdesk/internal/platform/metrics"
	"roomdesk/internal/session"
	httptransport "roomdesk/internal/transport/http"
	"roomdesk/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. View and client logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing roomdesk",
		"addr", cfg.Addr,
		"backend", cfg.BackendBaseURL,
		"environment", cfg.Environment,
	)

	m := metrics.New()
	store := session.NewInMemoryStore()
	breaker := circuit.New("booking-backend")
	tr := tracer.NewOTel()

	newClient := func(sess *session.Context) *backend.Client {
		return backend.New(cfg.BackendBaseURL, sess, cfg.RequestTimeout,
			backend.WithLogger(log),
			backend.WithMetrics(m),
			backend.WithTracer(tr),
			backend.WithBreaker(breaker),
		)
	}

	// An anonymous probe client drives the readiness check; it shares the
	// breaker so sustained session-level failures also flip readiness.
	probe := newClient(session.NewContext())
	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("booking-backend", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		return probe.Ping(ctx)
	})

	handler := httptransport.NewHandler(cfg, log, m, store, newClient)
	router := httptransport.NewRouter(handler, healthHandler, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
