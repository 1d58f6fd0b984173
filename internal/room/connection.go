package room

import (
	"context"
	"log/slog"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// broadcast publishes an outbound payload. Subscriber errors are returned
// to the caller.
func (r *Room) broadcast(ctx context.Context, channel string, payload any) error {
	ctx, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("event.channel", channel),
	))
	defer span.End()

	if err := r.broker.Publish(ctx, channel, payload); err != nil {
		slog.ErrorContext(ctx, "error publishing to subscribers", "room.id", r.ID, "channel", channel, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error publishing to subscribers")
		return err
	}
	return nil
}

func (r *Room) broadcastBoard(ctx context.Context, board game.Board, next game.Mark, status game.Status) error {
	return r.broadcast(ctx, events.BoardUpdatedChannel, &events.BoardUpdatedPayload{
		RoomID: r.ID,
		Board:  board,
		Next:   next,
		Status: status,
	})
}
