package config

import (
	"fmt"
	"time"
)

// NATSConfig selects the JetStream stream that receives beer events.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Stream  string        `koanf:"stream"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) String() string {
	return section("NATS",
		"enabled", c.Enabled,
		"url", c.Url,
		"stream", c.Stream,
		"timeout", c.Timeout,
	)
}

func (c *NATSConfig) Validate() error {
	switch {
	case !c.Enabled:
		return nil
	case c.Url == "":
		return fmt.Errorf("NATS URL is not configured")
	case c.Stream == "":
		return fmt.Errorf("NATS stream is not configured")
	case c.Timeout <= 0:
		return fmt.Errorf("nats dial timeout is not configured")
	}
	return nil
}

// BreakerConfig tunes the circuit breaker guarding the event publisher.
// The breaker opens after ConsecutiveFailures failures in a row, or once
// MinRequests calls have been seen and ErrorRatePercent of them failed.
type BreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	MinRequests         uint32        `koanf:"minrequests"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

func (c *BreakerConfig) String() string {
	return section("Circuit Breaker",
		"consecutivefailures", c.ConsecutiveFailures,
		"errorratepercent", c.ErrorRatePercent,
		"minrequests", c.MinRequests,
		"opentimeout", c.OpenTimeout,
	)
}

func (c *BreakerConfig) Validate() error {
	switch {
	case c.ConsecutiveFailures == 0:
		return fmt.Errorf("breaker.consecutivefailures must be greater than 0")
	case c.ErrorRatePercent < 0 || c.ErrorRatePercent > 100:
		return fmt.Errorf("breaker.errorratepercent must be between 0 and 100")
	case c.OpenTimeout <= 0:
		return fmt.Errorf("breaker.opentimeout must be greater than 0")
	}
	return nil
}
