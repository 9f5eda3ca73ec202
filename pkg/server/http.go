package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/beerstock/pkg/config"
	"github.com/abgdnv/beerstock/pkg/web"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// auxReadHeaderTimeout applies to the metrics and pprof listeners.
const auxReadHeaderTimeout = 5 * time.Second

// NewHTTPServer builds the public API server. Each request runs in an otelhttp
// span named after operation.
func NewHTTPServer(cfg config.HTTPConfig, operation string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           otelhttp.NewHandler(handler, operation),
		ReadTimeout:       cfg.Timeout.Read,
		WriteTimeout:      cfg.Timeout.Write,
		IdleTimeout:       cfg.Timeout.Idle,
		ReadHeaderTimeout: cfg.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewMetricsServer serves metricsHandler under /metrics on addr.
func NewMetricsServer(addr string, metricsHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: auxReadHeaderTimeout}
}

// NewPprofServer serves http.DefaultServeMux, where net/http/pprof registers
// its handlers, on addr.
func NewPprofServer(addr string) *http.Server {
	return &http.Server{Addr: addr, ReadHeaderTimeout: auxReadHeaderTimeout}
}

// NewChiRouter returns a router that tags requests with an id, logs them
// and turns panics into 500 responses.
func NewChiRouter(logger *slog.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(web.RequestIDInjector, web.StructuredLogger(logger), web.Recoverer(logger))
	return mux
}
