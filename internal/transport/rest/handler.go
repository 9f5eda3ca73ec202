// Package rest provides HTTP handlers for the beer inventory.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	beererrors "github.com/abgdnv/beerstock/internal/errors"
	"github.com/abgdnv/beerstock/internal/service"
	"github.com/abgdnv/beerstock/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// readinessTimeout bounds the store ping of /readyz.
const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the beer inventory over HTTP. Its logger is expected to
// carry request ids through the context (see pkg/logger).
type Handler struct {
	service  service.BeerService
	pinger   Pinger
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler serving service; pinger backs the readiness probe.
func NewHandler(service service.BeerService, pinger Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		pinger:   pinger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the beer inventory.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/beers", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Get("/{name}", h.FindByName)
		r.Delete("/{id}", h.DeleteByID)
		r.Patch("/{id}/increment", h.Increment)
		r.Patch("/{id}/decrement", h.Decrement)
	})
	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadinessCheck)
}

// Create registers a new beer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	var beerDto service.BeerDto
	if !web.DecodeJSON(w, r, mLogger, &beerDto) {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create beer", "beer", beerDto)
	if err := h.validate.Struct(beerDto); err != nil {
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "error", err)
		web.RespondValidationError(w, mLogger, err)
		return
	}

	created, err := h.service.Create(r.Context(), beerDto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Failed to create beer")
		return
	}
	mLogger.InfoContext(r.Context(), "Beer created successfully", "ID", created.ID, "name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindByName retrieves a beer by its name.
func (h *Handler) FindByName(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	name := r.PathValue("name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	mLogger.DebugContext(r.Context(), "Received request to find beer by name", "name", name)
	found, err := h.service.FindByName(r.Context(), name)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "Failed to retrieve beer")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// ListAll retrieves every beer.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving beer list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch beers")
		return
	}
	if list == nil {
		list = []service.BeerDto{}
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved beer list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// DeleteByID removes a beer.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete beer", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to delete beer with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Beer deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Increment adds stock to a beer.
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.service.Increment)
}

// Decrement removes stock from a beer.
func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.service.Decrement)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request, adjust func(context.Context, int64, int) (*service.BeerDto, error)) {
	mLogger := h.logger
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var quantityDto service.QuantityDto
	if !web.DecodeJSON(w, r, mLogger, &quantityDto) {
		return
	}
	if err := h.validate.Struct(quantityDto); err != nil {
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "error", err)
		web.RespondValidationError(w, mLogger, err)
		return
	}

	updated, err := adjust(r.Context(), id, quantityDto.Quantity)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, fmt.Sprintf("Failed to update stock of beer with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Beer stock updated", "ID", id, "quantity", updated.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// respondServiceError maps service failures to status codes. Unexpected
// errors are logged and answered with failMessage only.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, failMessage string) {
	switch {
	case errors.Is(err, beererrors.ErrBeerNotFound):
		mLogger.WarnContext(r.Context(), "Beer not found", "error", err)
		web.RespondError(w, mLogger, http.StatusNotFound, err.Error())
	case errors.Is(err, beererrors.ErrBeerAlreadyRegistered):
		mLogger.WarnContext(r.Context(), "Beer already registered", "error", err)
		web.RespondError(w, mLogger, http.StatusConflict, err.Error())
	case errors.Is(err, beererrors.ErrStockExceeded),
		errors.Is(err, beererrors.ErrInsufficientStock),
		errors.Is(err, beererrors.ErrInvalidQuantity):
		mLogger.WarnContext(r.Context(), "Stock change rejected", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	default:
		mLogger.ErrorContext(r.Context(), failMessage, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, failMessage)
	}
}

// HealthCheck is a simple liveness endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadinessCheck answers 200 while the store is reachable and 503 otherwise.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
}
