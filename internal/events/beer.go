// Package events defines the notifications published after beer mutations.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/beerstock/pkg/messaging"
	"go.opentelemetry.io/otel/propagation"
)

// BeerCreatedEvent is published after a beer is registered.
type BeerCreatedEvent struct {
	Carrier     propagation.MapCarrier `json:"carrier,omitempty"`
	BeerID      int64                  `json:"beer_id"`
	Name        string                 `json:"name"`
	Brand       string                 `json:"brand"`
	Type        string                 `json:"type"`
	MaxCapacity int                    `json:"max_capacity"`
	Quantity    int                    `json:"quantity"`
	CreatedAt   time.Time              `json:"created_at"`
}

func (e BeerCreatedEvent) Subject() string {
	return messaging.BeersCreatedSubject
}

func (e BeerCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// BeerDeletedEvent is published after a beer is removed.
type BeerDeletedEvent struct {
	Carrier   propagation.MapCarrier `json:"carrier,omitempty"`
	BeerID    int64                  `json:"beer_id"`
	Name      string                 `json:"name"`
	DeletedAt time.Time              `json:"deleted_at"`
}

func (e BeerDeletedEvent) Subject() string {
	return messaging.BeersDeletedSubject
}

func (e BeerDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// BeerStockChangedEvent is published after an increment or decrement.
// Delta is positive for increments and negative for decrements.
type BeerStockChangedEvent struct {
	Carrier   propagation.MapCarrier `json:"carrier,omitempty"`
	BeerID    int64                  `json:"beer_id"`
	Delta     int                    `json:"delta"`
	Quantity  int                    `json:"quantity"`
	ChangedAt time.Time              `json:"changed_at"`
}

func (e BeerStockChangedEvent) Subject() string {
	return messaging.BeersStockChangedSubject
}

func (e BeerStockChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
