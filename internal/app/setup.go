// Package app contains the application setup for the beer inventory service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/beerstock/internal/config"
	"github.com/abgdnv/beerstock/internal/service"
	"github.com/abgdnv/beerstock/internal/store"
	"github.com/abgdnv/beerstock/internal/transport/rest"
	"github.com/abgdnv/beerstock/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/beerstock/pkg/config"
	"github.com/abgdnv/beerstock/pkg/messaging"
	pnats "github.com/abgdnv/beerstock/pkg/nats"
	"github.com/abgdnv/beerstock/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported to tracing, metrics and the gRPC health service.
const ServiceName = "beerstock"

type Dependencies struct {
	BeerService service.BeerService
	Store       store.BeerStore
	Logger      *slog.Logger
}

// SetupDependencies wires the inventory service on top of beerStore.
func SetupDependencies(beerStore store.BeerStore, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		BeerService: service.NewService(beerStore, publisher, logger),
		Store:       beerStore,
		Logger:      logger,
	}
}

// OpenStore connects to the database selected by cfg.Driver.
// The returned function releases the connection.
func OpenStore(ctx context.Context, cfg pkgconfig.DatabaseConfig) (store.BeerStore, func(), error) {
	switch cfg.Driver {
	case pkgconfig.DriverMemory:
		return store.NewInMemoryStore(), func() {}, nil
	case pkgconfig.DriverMySQL:
		db, err := bootstrap.NewMySQLDB(ctx, cfg.MySQLDSN(), cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return store.NewMySQLStore(db), func() { _ = db.Close() }, nil
	case pkgconfig.DriverPostgres, "":
		pool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPgStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// NewPublisher returns a JetStream publisher behind a circuit breaker when NATS is
// enabled, and a NoopPublisher otherwise. The returned function closes the connection.
func NewPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Nats.Enabled {
		logger.Info("NATS disabled, events will not be published")
		return messaging.NoopPublisher{}, func() {}, nil
	}
	nc, err := pnats.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := pnats.EnsureStream(ctx, js, cfg.Nats.Stream, messaging.BeersSubjectWildcard); err != nil {
		nc.Close()
		return nil, nil, err
	}
	publisher := messaging.NewBreaker(ServiceName+"-publisher", pnats.NewNatsPublisher(js), cfg.Breaker)
	return publisher, func() { _ = nc.Drain() }, nil
}

// SetupHttpHandler builds the router with all routes and middleware.
// Used by tests to exercise the full HTTP stack.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	beerHandler := rest.NewHandler(deps.BeerService, deps.Store, deps.Logger)
	beerHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server of the service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, ServiceName, SetupHttpHandler(deps))
}

// SetupGrpcServer creates the gRPC server exposing the health service (and reflection when enabled).
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *health.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpcServer := server.NewGRPCServer(deps.Logger, cfg.Grpc.ReflectionEnabled, func(s *grpc.Server) {
		grpc_health_v1.RegisterHealthServer(s, healthServer)
	})
	return grpcServer, healthServer
}
