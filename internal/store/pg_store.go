package store

import (
	"context"
	"errors"
	"fmt"

	beererrors "github.com/abgdnv/beerstock/internal/errors"
	"github.com/abgdnv/beerstock/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE of a unique constraint violation.
const pgUniqueViolation = "23505"

const beerColumns = "id, name, brand, type, max_capacity, quantity"

const (
	pgCreateBeer = `INSERT INTO beers (name, brand, type, max_capacity, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + beerColumns
	pgFindBeerByID       = `SELECT ` + beerColumns + ` FROM beers WHERE id = $1`
	pgFindBeerByName     = `SELECT ` + beerColumns + ` FROM beers WHERE name = $1`
	pgFindAllBeers       = `SELECT ` + beerColumns + ` FROM beers ORDER BY id`
	pgDeleteBeerByID     = `DELETE FROM beers WHERE id = $1`
	pgUpdateBeerQuantity = `UPDATE beers SET quantity = $2 WHERE id = $1 RETURNING ` + beerColumns
)

// PgStore implements BeerStore on PostgreSQL.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of BeerStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) Create(ctx context.Context, beer db.Beer) (*db.Beer, error) {
	created, err := p.queryOne(ctx, pgCreateBeer,
		beer.Name, beer.Brand, int16(beer.Type), beer.MaxCapacity, beer.Quantity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, beererrors.ErrBeerAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create beer: %w", err)
	}
	return created, nil
}

func (p *PgStore) FindByID(ctx context.Context, id int64) (*db.Beer, error) {
	beer, err := p.queryOne(ctx, pgFindBeerByID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, beererrors.ErrBeerNotFound
		}
		return nil, fmt.Errorf("failed to find beer by id: %w", err)
	}
	return beer, nil
}

func (p *PgStore) FindByName(ctx context.Context, name string) (*db.Beer, error) {
	beer, err := p.queryOne(ctx, pgFindBeerByName, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, beererrors.ErrBeerNotFound
		}
		return nil, fmt.Errorf("failed to find beer by name: %w", err)
	}
	return beer, nil
}

func (p *PgStore) FindAll(ctx context.Context) ([]db.Beer, error) {
	rows, err := p.db.Query(ctx, pgFindAllBeers)
	if err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	beers, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.Beer])
	if err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	if beers == nil {
		beers = []db.Beer{}
	}
	return beers, nil
}

func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, pgDeleteBeerByID, id)
	if err != nil {
		return fmt.Errorf("failed to delete beer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return beererrors.ErrBeerNotFound
	}
	return nil
}

func (p *PgStore) UpdateQuantity(ctx context.Context, id int64, quantity int32) (*db.Beer, error) {
	beer, err := p.queryOne(ctx, pgUpdateBeerQuantity, id, quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, beererrors.ErrBeerNotFound
		}
		return nil, fmt.Errorf("failed to update beer quantity: %w", err)
	}
	return beer, nil
}

func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PgStore) queryOne(ctx context.Context, sql string, args ...any) (*db.Beer, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	beer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[db.Beer])
	if err != nil {
		return nil, err
	}
	return &beer, nil
}
