package events

import (
	"testing"
	"time"

	"github.com/abgdnv/beerstock/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
)

func TestBeerEvents(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	carrier := propagation.MapCarrier{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}

	tests := []struct {
		name        string
		event       messaging.Event
		wantSubject string
		wantJSON    string
	}{
		{
			name:        "created",
			event:       BeerCreatedEvent{Carrier: carrier, BeerID: 1, Name: "Brahma", Brand: "Ambev", Type: "LAGER", MaxCapacity: 50, Quantity: 10, CreatedAt: at},
			wantSubject: "beers.created",
			wantJSON: `{"carrier":{"traceparent":"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
				"beer_id":1,"name":"Brahma","brand":"Ambev","type":"LAGER","max_capacity":50,"quantity":10,
				"created_at":"2026-10-15T12:00:00Z"}`,
		},
		{
			name:        "deleted without carrier",
			event:       BeerDeletedEvent{BeerID: 1, Name: "Brahma", DeletedAt: at},
			wantSubject: "beers.deleted",
			wantJSON:    `{"beer_id":1,"name":"Brahma","deleted_at":"2026-10-15T12:00:00Z"}`,
		},
		{
			name:        "stock changed",
			event:       BeerStockChangedEvent{BeerID: 1, Delta: -3, Quantity: 7, ChangedAt: at},
			wantSubject: "beers.stock.changed",
			wantJSON:    `{"beer_id":1,"delta":-3,"quantity":7,"changed_at":"2026-10-15T12:00:00Z"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.event.Payload()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, tt.event.Subject())
			assert.JSONEq(t, tt.wantJSON, string(payload))
		})
	}
}
