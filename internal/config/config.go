package config

import (
	"strings"

	"github.com/abgdnv/beerstock/pkg/config"
	"github.com/abgdnv/beerstock/pkg/config/configloader"
)

// EnvPrefix prefixes every environment variable read by the service, e.g. BEER_DATABASE_URL.
const EnvPrefix = "BEER_"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Grpc       config.GrpcServerConfig `koanf:"grpc"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Metrics    config.MetricsConfig    `koanf:"metrics"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Breaker    config.BreakerConfig    `koanf:"breaker"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
}

// Load reads the configuration from configFile, .env and BEER_* environment variables.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](configFile, EnvPrefix)
}

// String prints every section; database credentials are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Grpc.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.Nats.String())
	b.WriteString(c.Breaker.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Metrics.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Grpc,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.Metrics,
		&c.Telemetry,
		&c.Shutdown,
	}
	if c.Nats.Enabled {
		validators = append(validators, &c.Nats, &c.Breaker)
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
