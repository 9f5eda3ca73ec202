package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	beererrors "github.com/abgdnv/beerstock/internal/errors"
	"github.com/abgdnv/beerstock/internal/store/db"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const (
	myCreateBeer         = `INSERT INTO beers (name, brand, type, max_capacity, quantity) VALUES (?, ?, ?, ?, ?)`
	myFindBeerByID       = `SELECT ` + beerColumns + ` FROM beers WHERE id = ?`
	myFindBeerByName     = `SELECT ` + beerColumns + ` FROM beers WHERE name = ?`
	myFindAllBeers       = `SELECT ` + beerColumns + ` FROM beers ORDER BY id`
	myDeleteBeerByID     = `DELETE FROM beers WHERE id = ?`
	myUpdateBeerQuantity = `UPDATE beers SET quantity = ? WHERE id = ?`
)

// MySQLStore implements BeerStore on MySQL.
type MySQLStore struct {
	db *sqlx.DB
}

// NewMySQLStore creates a new instance of BeerStore using a MySQL handle.
func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (m *MySQLStore) Create(ctx context.Context, beer db.Beer) (*db.Beer, error) {
	res, err := m.db.ExecContext(ctx, myCreateBeer,
		beer.Name, beer.Brand, int16(beer.Type), beer.MaxCapacity, beer.Quantity)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return nil, beererrors.ErrBeerAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create beer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted beer id: %w", err)
	}
	beer.ID = id
	return &beer, nil
}

func (m *MySQLStore) FindByID(ctx context.Context, id int64) (*db.Beer, error) {
	var beer db.Beer
	if err := m.db.GetContext(ctx, &beer, myFindBeerByID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, beererrors.ErrBeerNotFound
		}
		return nil, fmt.Errorf("failed to find beer by id: %w", err)
	}
	return &beer, nil
}

func (m *MySQLStore) FindByName(ctx context.Context, name string) (*db.Beer, error) {
	var beer db.Beer
	if err := m.db.GetContext(ctx, &beer, myFindBeerByName, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, beererrors.ErrBeerNotFound
		}
		return nil, fmt.Errorf("failed to find beer by name: %w", err)
	}
	return &beer, nil
}

func (m *MySQLStore) FindAll(ctx context.Context) ([]db.Beer, error) {
	beers := []db.Beer{}
	if err := m.db.SelectContext(ctx, &beers, myFindAllBeers); err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	return beers, nil
}

func (m *MySQLStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := m.db.ExecContext(ctx, myDeleteBeerByID, id)
	if err != nil {
		return fmt.Errorf("failed to delete beer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete beer: %w", err)
	}
	if affected == 0 {
		return beererrors.ErrBeerNotFound
	}
	return nil
}

// UpdateQuantity re-reads the row after the update because MySQL reports zero
// affected rows when the value does not change.
func (m *MySQLStore) UpdateQuantity(ctx context.Context, id int64, quantity int32) (*db.Beer, error) {
	if _, err := m.db.ExecContext(ctx, myUpdateBeerQuantity, quantity, id); err != nil {
		return nil, fmt.Errorf("failed to update beer quantity: %w", err)
	}
	return m.FindByID(ctx, id)
}

func (m *MySQLStore) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
