package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/abgdnv/beerstock/internal/app"
	"github.com/abgdnv/beerstock/internal/config"
	"github.com/abgdnv/beerstock/pkg/bootstrap"
	"github.com/abgdnv/beerstock/pkg/server"
	"github.com/abgdnv/beerstock/pkg/telemetry"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// run opens the store and the event publisher, then serves HTTP, gRPC health,
// metrics and pprof until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	beerStore, closeStore, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}
	defer closeStore()

	publisher, closePublisher, err := app.NewPublisher(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer closePublisher()

	g, gCtx := errgroup.WithContext(ctx)

	// create tracer provider
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(ctx, app.ServiceName, cfg.Telemetry)
		if err != nil {
			logger.Error("error creating tracer provider", slog.Any("error", err))
			return err
		}
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down tracer provider")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shutdown tracer provider: %w", err)
			}
			return nil
		})
	} else {
		telemetry.SetPropagator()
	}

	if cfg.Metrics.Enabled {
		meterProvider, metricsHandler, err := telemetry.NewMeterProvider(app.ServiceName)
		if err != nil {
			return err
		}
		serveHTTP(g, gCtx, logger, "metrics", server.NewMetricsServer(cfg.Metrics.Addr, metricsHandler), cfg.Shutdown.Timeout)
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return meterProvider.Shutdown(shutdownCtx)
		})
	}

	deps := app.SetupDependencies(beerStore, publisher, logger)
	serveHTTP(g, gCtx, logger, "HTTP", app.SetupHttpServer(deps, cfg), cfg.Shutdown.Timeout)

	grpcServer, grpcHealth := app.SetupGrpcServer(deps, cfg)
	// Start the gRPC server
	g.Go(func() error {
		grpcAddr := ":" + cfg.Grpc.Port
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", grpcAddr))
		return grpcServer.Serve(lis)
	})
	// gracefully shutdown gRPC server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down gRPC server...")
		grpcHealth.SetServingStatus(app.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			grpcHealth.Shutdown()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server stopped gracefully.")
			return nil
		case <-time.After(cfg.Shutdown.Timeout):
			logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
			grpcServer.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})

	if cfg.PProf.Enabled {
		serveHTTP(g, gCtx, logger, "pprof", server.NewPprofServer(cfg.PProf.Addr), cfg.Shutdown.Timeout)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// serveHTTP runs srv in g and shuts it down once gCtx is done.
func serveHTTP(g *errgroup.Group, gCtx context.Context, logger *slog.Logger, name string, srv *http.Server, timeout time.Duration) {
	g.Go(func() error {
		logger.Info(name+" server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
