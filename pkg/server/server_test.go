package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abgdnv/beerstock/pkg/config"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewChiRouter_InjectsRequestIDAndRecovers(t *testing.T) {
	// given
	mux := NewChiRouter(discardLogger())
	mux.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	mux.Get("/id", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middleware.GetReqID(r.Context())))
	})

	// when
	panicRec := httptest.NewRecorder()
	mux.ServeHTTP(panicRec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	idRec := httptest.NewRecorder()
	mux.ServeHTTP(idRec, httptest.NewRequest(http.MethodGet, "/id", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, panicRec.Code)
	assert.NotEmpty(t, idRec.Body.String())
	assert.Equal(t, idRec.Body.String(), idRec.Header().Get(middleware.RequestIDHeader))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.HTTPConfig{Port: 8080, MaxHeaderBytes: 1 << 20}
	cfg.Timeout.ReadHeader = 2 * time.Second

	srv := NewHTTPServer(cfg, "beerstock", http.NotFoundHandler())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
	assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}

func TestNewMetricsServer(t *testing.T) {
	// given
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("beers_created_total 1\n"))
	})
	srv := NewMetricsServer(":9464", metrics)

	// when
	ok := httptest.NewRecorder()
	srv.Handler.ServeHTTP(ok, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	missing := httptest.NewRecorder()
	srv.Handler.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, ":9464", srv.Addr)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Contains(t, ok.Body.String(), "beers_created_total")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestNewGRPCServer_ServesHealth(t *testing.T) {
	// given
	lis := bufconn.Listen(1024 * 1024)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	srv := NewGRPCServer(discardLogger(), true, func(s *grpc.Server) {
		grpc_health_v1.RegisterHealthServer(s, healthServer)
	})
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough://bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	// when
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})

	// then
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	assert.Contains(t, srv.GetServiceInfo(), "grpc.reflection.v1.ServerReflection")
}
