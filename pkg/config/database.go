package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported values of database.driver.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

var driverSchemes = map[string][]string{
	DriverPostgres: {"postgres://", "postgresql://"},
	DriverMySQL:    {"mysql://"},
}

// DatabaseConfig selects the record store. URL is a postgres:// or mysql://
// URL in the form golang-migrate accepts; it is ignored for the memory driver.
type DatabaseConfig struct {
	Driver  string        `koanf:"driver"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String masks the credentials of the URL.
func (c *DatabaseConfig) String() string {
	return section("Database", "driver", c.Driver, "url", MaskURL(c.URL), "timeout", c.Timeout)
}

// Validate defaults an empty driver to postgres.
func (c *DatabaseConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = DriverPostgres
	}
	if c.Driver == DriverMemory {
		return nil
	}
	schemes, ok := driverSchemes[c.Driver]
	if !ok {
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !hasAnyPrefix(c.URL, schemes) {
		return fmt.Errorf("database URL must start with '%s': %s", schemes[0], MaskURL(c.URL))
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}

// MySQLDSN strips the migrate-style scheme so the URL can be handed to the mysql driver.
func (c *DatabaseConfig) MySQLDSN() string {
	return strings.TrimPrefix(c.URL, "mysql://")
}

// MaskURL hides everything before the host part of a connection URL.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if at := strings.LastIndex(url, "@"); at >= 0 {
		return "****" + url[at:]
	}
	return "****"
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
