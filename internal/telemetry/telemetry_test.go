package telemetry

import (
	"bytes"
	"context"
	"testing"

	"ctchen222/tictactoe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_None(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), config.Telemetry{Exporter: "none"})

	require.NoError(t, err)
	assert.Same(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := Init(context.Background(), config.Telemetry{Exporter: "jaeger"})

	require.ErrorIs(t, err, ErrUnknownExporter)
}

func TestInit_Stdout(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	// Given: the stdout exporter writing into a buffer
	var out bytes.Buffer
	shutdown, err := initWithWriter(context.Background(), config.Telemetry{
		Exporter:    "stdout",
		ServiceName: "tic-tac-toe-test",
	}, &out)
	require.NoError(t, err)

	// When: a span is ended and the provider shut down
	_, span := otel.Tracer("room").Start(context.Background(), "room.handleMove")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	// Then: the span was exported with the service name
	assert.Contains(t, out.String(), "room.handleMove")
	assert.Contains(t, out.String(), "tic-tac-toe-test")
}
