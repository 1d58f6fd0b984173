package room

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// resetGame starts a new round and redraws the empty board.
func (r *Room) resetGame(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "room.resetGame", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("game.moves", r.engine.Moves()),
	))
	defer span.End()

	r.engine.Reset()
	slog.InfoContext(ctx, "Game reset", "room.id", r.ID, "next", r.engine.Next().String())

	if err := r.SendInitialState(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish reset board")
		return err
	}
	return nil
}

// SendInitialState publishes the current board without changing it.
func (r *Room) SendInitialState(ctx context.Context) error {
	return r.broadcastBoard(ctx, r.engine.Board(), r.engine.Next(), r.engine.Status())
}
