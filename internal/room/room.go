package room

//go:generate mockgen -source=room.go -destination=mocks/mock_broker.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")
)

var (
	ErrMalformedMessage  = errors.New("malformed message")
	ErrInvalidMessage    = errors.New("invalid message")
	ErrUnexpectedPayload = errors.New("unexpected payload")
)

// Broker is the part of the event bus a room needs.
type Broker interface {
	Subscribe(channel string, h events.Handler) *events.Subscription
	Unsubscribe(channel string, sub *events.Subscription) bool
	Publish(ctx context.Context, channel string, payload any) error
}

// Room connects one game engine to a broker. Inbound channels drive the
// engine; results go out on the outbound channels.
// A Room is not safe for concurrent use.
type Room struct {
	ID      string
	engine  *game.Engine
	broker  Broker
	subs    []*events.Subscription
	metrics *roomMetrics
}

// NewRoom creates a room. An empty id is replaced by a random UUID.
func NewRoom(id string, engine *game.Engine, broker Broker) *Room {
	if id == "" {
		id = uuid.New().String()
	}
	return &Room{
		ID:      id,
		engine:  engine,
		broker:  broker,
		metrics: newRoomMetrics(),
	}
}

// Start subscribes the room to its inbound channels. Calling Start on a
// started room does nothing.
func (r *Room) Start() {
	if len(r.subs) > 0 {
		return
	}
	r.subs = []*events.Subscription{
		r.broker.Subscribe(events.MoveChannel, r.handleMove),
		r.broker.Subscribe(events.NewGameChannel, r.handleNewGame),
		r.broker.Subscribe(events.BindPlayerChannel, r.handleBindPlayer),
	}
	slog.Info("Room started", "room.id", r.ID, "board.size", r.engine.Size())
}

// Close removes the room's subscriptions.
func (r *Room) Close() {
	for _, sub := range r.subs {
		r.broker.Unsubscribe(sub.Channel(), sub)
	}
	r.subs = nil
	slog.Info("Room closed", "room.id", r.ID)
}

type roomMetrics struct {
	movesApplied  metric.Int64Counter
	movesRejected metric.Int64Counter
	gamesFinished metric.Int64Counter
}

func newRoomMetrics() *roomMetrics {
	fallback := noop.Meter{}
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			slog.Error("failed to create counter", "metric", name, "error", err)
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}
	return &roomMetrics{
		movesApplied:  counter("room.moves.applied", "Moves accepted by the engine"),
		movesRejected: counter("room.moves.rejected", "Moves rejected by the engine"),
		gamesFinished: counter("room.games.finished", "Games that reached a terminal status"),
	}
}

// payloadAs accepts either T or *T.
func payloadAs[T any](payload any) (*T, error) {
	switch p := payload.(type) {
	case *T:
		if p == nil {
			break
		}
		return p, nil
	case T:
		return &p, nil
	}
	var zero T
	return nil, fmt.Errorf("%w: got %T, want %T", ErrUnexpectedPayload, payload, zero)
}
