package messaging

import (
	"context"
)

// Subjects of the beer events; all of them are captured by the BEERS stream.
const (
	BeersCreatedSubject      = "beers.created"
	BeersDeletedSubject      = "beers.deleted"
	BeersStockChangedSubject = "beers.stock.changed"
	BeersSubjectWildcard     = "beers.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. Used when the broker is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
