package main

import (
	"context"
	"errors"
	"github.com/Avi18971911/Haruspex/internal/autotrace"
	"github.com/Avi18971911/Haruspex/internal/config"
	"github.com/Avi18971911/Haruspex/internal/trace_server/router"
	"github.com/Avi18971911/Haruspex/internal/trace_server/service"
	"github.com/Avi18971911/Haruspex/internal/tracing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"math/rand"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// @title Haruspex API
// @version 1.0
// @description A small instrumented web service that continuously generates OpenTelemetry traces.

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := tracing.Init(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracing: %v", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := tracerProvider.Shutdown(flushCtx); err != nil {
			logger.Error("Error encountered when shutting down tracer provider", zap.Error(err))
		}
	}()
	propagator := tracing.Propagator()

	simulationService := service.CreateNewSimulationServiceImpl(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)
	r := router.CreateRouter(cfg.ServiceName, simulationService, tracerProvider, propagator, logger)

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		logger.Fatal("Failed to listen: %v", zap.Error(err))
	}
	srv := &http.Server{Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		logger.Info(
			"Starting server",
			zap.String("address", cfg.Address()),
			zap.String("service_name", cfg.ServiceName),
			zap.String("traces_exporter", cfg.TracesExporter),
			zap.Bool("auto_trace_enabled", cfg.AutoTraceEnabled),
		)
		return srv.Serve(listener)
	})
	if cfg.AutoTraceEnabled {
		generator := autotrace.NewTraceGenerator(
			cfg.BaseURL(),
			cfg.AutoTraceInterval,
			rand.New(rand.NewSource(time.Now().UnixNano())),
			tracerProvider,
			propagator,
			logger,
		)
		g.Go(func() error {
			return generator.Start(gctx)
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to serve: %v", zap.Error(err))
	}
}
