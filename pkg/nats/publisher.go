package nats

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abgdnv/beerstock/pkg/messaging"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const contentTypeHeader = "Content-Type"

// NatsPublisher publishes events to JetStream and waits for the stream ack.
// The active trace context travels in the message headers.
type NatsPublisher struct {
	js jetstream.JetStream
}

func NewNatsPublisher(js jetstream.JetStream) *NatsPublisher {
	return &NatsPublisher{js: js}
}

func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	msg, err := newMsg(ctx, event)
	if err != nil {
		return err
	}
	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", msg.Subject, err)
	}
	return nil
}

func newMsg(ctx context.Context, event messaging.Event) (*nats.Msg, error) {
	data, err := event.Payload()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", event.Subject(), err)
	}
	msg := nats.NewMsg(event.Subject())
	msg.Data = data
	msg.Header.Set(contentTypeHeader, "application/json")
	// nats.Header and http.Header share the same layout
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(http.Header(msg.Header)))
	return msg, nil
}
