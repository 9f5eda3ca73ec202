// Package migrations embeds the schema migrations of every supported database
// and applies them with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql mysql/*.sql
var files embed.FS

// New returns a migrate instance for driver ("postgres" or "mysql") targeting the database at url.
// The caller must Close it.
func New(driver, url string) (*migrate.Migrate, error) {
	switch driver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func Up(driver, url string) error {
	return run(driver, url, (*migrate.Migrate).Up)
}

// Down reverts all applied migrations.
func Down(driver, url string) error {
	return run(driver, url, (*migrate.Migrate).Down)
}

func run(driver, url string, step func(*migrate.Migrate) error) (err error) {
	m, err := New(driver, url)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
