package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type brokenEvent struct{}

func (brokenEvent) Subject() string          { return "beers.broken" }
func (brokenEvent) Payload() ([]byte, error) { return nil, errors.New("cannot encode") }

func TestNewMsg_SetsHeadersAndPayload(t *testing.T) {
	// given
	otel.SetTextMapPropagator(propagation.TraceContext{})
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	// when
	msg, err := newMsg(ctx, unroutedEvent{})

	// then
	require.NoError(t, err)
	assert.Equal(t, "nobody.listens", msg.Subject)
	assert.JSONEq(t, `{}`, string(msg.Data))
	assert.Equal(t, "application/json", msg.Header.Get(contentTypeHeader))
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", msg.Header.Get("Traceparent"))
}

func TestNewMsg_PayloadError(t *testing.T) {
	_, err := newMsg(context.Background(), brokenEvent{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode beers.broken event")
}
