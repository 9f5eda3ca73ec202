// Package service provides the implementation of beer inventory business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	beererrors "github.com/abgdnv/beerstock/internal/errors"
	"github.com/abgdnv/beerstock/internal/events"
	"github.com/abgdnv/beerstock/internal/store"
	"github.com/abgdnv/beerstock/internal/store/db"
	"github.com/abgdnv/beerstock/pkg/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// BeerService defines the methods for managing the beer inventory.
type BeerService interface {
	// Create registers a new beer.
	// Returns a DuplicateNameError if a beer with the same name exists.
	Create(ctx context.Context, beer BeerDto) (*BeerDto, error)

	// FindByName retrieves a beer by its name.
	// Returns a NotFoundError if no beer has that name.
	FindByName(ctx context.Context, name string) (*BeerDto, error)

	// ListAll returns every registered beer. Returns an empty slice if there are none.
	ListAll(ctx context.Context) ([]BeerDto, error)

	// DeleteByID removes a beer.
	// Returns a NotFoundError if no beer has that ID.
	DeleteByID(ctx context.Context, id int64) error

	// Increment adds quantity units to the stock of a beer.
	// Returns a StockError wrapping ErrStockExceeded if the result would exceed the max capacity.
	Increment(ctx context.Context, id int64, quantity int) (*BeerDto, error)

	// Decrement removes quantity units from the stock of a beer.
	// Returns a StockError wrapping ErrInsufficientStock if the result would be negative.
	Decrement(ctx context.Context, id int64, quantity int) (*BeerDto, error)
}

// BeerDto represents the data transfer object for a beer.
// ID is assigned by the store and ignored on create.
type BeerDto struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Brand       string `json:"brand" validate:"required,min=1,max=200"`
	Type        string `json:"type" validate:"required,oneof=LAGER MALZBIER WITBIER WEISS ALE IPA STOUT"`
	MaxCapacity int    `json:"maxCapacity" validate:"required,gt=0,max=500"`
	Quantity    int    `json:"quantity" validate:"min=0,ltefield=MaxCapacity"`
}

// QuantityDto is the body of the increment and decrement requests.
type QuantityDto struct {
	Quantity int `json:"quantity" validate:"required,gt=0,max=500"`
}

// Service implements BeerService on top of a BeerStore.
// It holds no beer state between calls.
type Service struct {
	store        store.BeerStore
	publisher    messaging.Publisher
	logger       *slog.Logger
	now          func() time.Time
	createdTotal metric.Int64Counter
	deletedTotal metric.Int64Counter
	stockChanges metric.Int64Counter
}

// NewService creates a new instance of BeerService with the provided store and event publisher.
func NewService(beerStore store.BeerStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("beerstock")
	return &Service{
		store:        beerStore,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
		createdTotal: mustCounter(meter, "beers_created", "Total number of registered beers"),
		deletedTotal: mustCounter(meter, "beers_deleted", "Total number of deleted beers"),
		stockChanges: mustCounter(meter, "beer_stock_changes", "Total number of stock increments and decrements"),
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// Create registers a new beer and returns it with its assigned ID.
func (s *Service) Create(ctx context.Context, beer BeerDto) (*BeerDto, error) {
	_, err := s.store.FindByName(ctx, beer.Name)
	if err == nil {
		return nil, &beererrors.DuplicateNameError{Name: beer.Name}
	}
	if !errors.Is(err, beererrors.ErrBeerNotFound) {
		return nil, fmt.Errorf("failed to check beer name: %w", err)
	}

	entity := ToEntity(beer)
	entity.ID = 0
	created, err := s.store.Create(ctx, entity)
	if err != nil {
		// lost a race with a concurrent create of the same name
		if errors.Is(err, beererrors.ErrBeerAlreadyRegistered) {
			return nil, &beererrors.DuplicateNameError{Name: beer.Name}
		}
		return nil, fmt.Errorf("failed to create beer: %w", err)
	}

	dto := ToDto(created)
	s.publish(ctx, events.BeerCreatedEvent{
		Carrier:     carrier(ctx),
		BeerID:      dto.ID,
		Name:        dto.Name,
		Brand:       dto.Brand,
		Type:        dto.Type,
		MaxCapacity: dto.MaxCapacity,
		Quantity:    dto.Quantity,
		CreatedAt:   s.now().UTC(),
	})
	s.createdTotal.Add(ctx, 1)
	return &dto, nil
}

// FindByName retrieves a beer by its exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*BeerDto, error) {
	beer, err := s.store.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, beererrors.ErrBeerNotFound) {
			return nil, &beererrors.NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to find beer: %w", err)
	}
	dto := ToDto(beer)
	return &dto, nil
}

// ListAll returns every beer in store order.
func (s *Service) ListAll(ctx context.Context) ([]BeerDto, error) {
	beers, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	dtos := make([]BeerDto, 0, len(beers))
	for i := range beers {
		dtos = append(dtos, ToDto(&beers[i]))
	}
	return dtos, nil
}

// DeleteByID removes the beer with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	beer, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		// deleted concurrently between the lookup and the delete
		if errors.Is(err, beererrors.ErrBeerNotFound) {
			return &beererrors.NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to delete beer: %w", err)
	}

	s.publish(ctx, events.BeerDeletedEvent{
		Carrier:   carrier(ctx),
		BeerID:    id,
		Name:      beer.Name,
		DeletedAt: s.now().UTC(),
	})
	s.deletedTotal.Add(ctx, 1)
	return nil
}

// Increment adds quantity to the stock of the beer with the given ID.
func (s *Service) Increment(ctx context.Context, id int64, quantity int) (*BeerDto, error) {
	if quantity <= 0 {
		return nil, beererrors.ErrInvalidQuantity
	}
	beer, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity > int(beer.MaxCapacity-beer.Quantity) {
		return nil, stockError(beer, quantity, beererrors.ErrStockExceeded)
	}
	return s.adjust(ctx, beer, quantity)
}

// Decrement removes quantity from the stock of the beer with the given ID.
func (s *Service) Decrement(ctx context.Context, id int64, quantity int) (*BeerDto, error) {
	if quantity <= 0 {
		return nil, beererrors.ErrInvalidQuantity
	}
	beer, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity > int(beer.Quantity) {
		return nil, stockError(beer, quantity, beererrors.ErrInsufficientStock)
	}
	return s.adjust(ctx, beer, -quantity)
}

// adjust writes the new stock. delta must already be within bounds of the
// value read before, so two concurrent adjustments of the same beer may both pass the check;
// the relational schema rejects a result outside [0, max capacity].
func (s *Service) adjust(ctx context.Context, beer *db.Beer, delta int) (*BeerDto, error) {
	updated, err := s.store.UpdateQuantity(ctx, beer.ID, beer.Quantity+int32(delta))
	if err != nil {
		if errors.Is(err, beererrors.ErrBeerNotFound) {
			return nil, &beererrors.NotFoundError{ID: beer.ID}
		}
		return nil, fmt.Errorf("failed to update beer quantity: %w", err)
	}

	direction := "increment"
	if delta < 0 {
		direction = "decrement"
	}
	s.publish(ctx, events.BeerStockChangedEvent{
		Carrier:   carrier(ctx),
		BeerID:    updated.ID,
		Delta:     delta,
		Quantity:  int(updated.Quantity),
		ChangedAt: s.now().UTC(),
	})
	s.stockChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))

	dto := ToDto(updated)
	return &dto, nil
}

func (s *Service) findByID(ctx context.Context, id int64) (*db.Beer, error) {
	beer, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, beererrors.ErrBeerNotFound) {
			return nil, &beererrors.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to find beer: %w", err)
	}
	return beer, nil
}

// publish sends the event; a failure is logged and otherwise ignored.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

func stockError(beer *db.Beer, requested int, cause error) *beererrors.StockError {
	return &beererrors.StockError{
		ID:        beer.ID,
		Requested: requested,
		Quantity:  int(beer.Quantity),
		Max:       int(beer.MaxCapacity),
		Cause:     cause,
	}
}

func carrier(ctx context.Context) propagation.MapCarrier {
	c := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, c)
	return c
}
