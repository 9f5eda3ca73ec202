// Package store provides an interface for beer storage operations.
package store

import (
	"context"

	"github.com/abgdnv/beerstock/internal/store/db"
)

// BeerStore is an interface for beer storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type BeerStore interface {
	// Create inserts a new beer and returns it with the store-assigned ID.
	// Returns ErrBeerAlreadyRegistered if the name is already taken.
	Create(ctx context.Context, beer db.Beer) (*db.Beer, error)

	// FindByID retrieves a single beer by its unique identifier.
	// Returns ErrBeerNotFound if no beer exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Beer, error)

	// FindByName retrieves a single beer by its unique name.
	// Returns ErrBeerNotFound if no beer exists with the given name.
	FindByName(ctx context.Context, name string) (*db.Beer, error)

	// FindAll returns every beer ordered by ID.
	// Returns an empty slice if no beers exist.
	FindAll(ctx context.Context) ([]db.Beer, error)

	// DeleteByID removes a beer by its ID.
	// Returns ErrBeerNotFound if no beer exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// UpdateQuantity sets the stock of a beer and returns the updated beer.
	// Returns ErrBeerNotFound if no beer exists with the given ID.
	UpdateQuantity(ctx context.Context, id int64, quantity int32) (*db.Beer, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
