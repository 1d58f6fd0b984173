package room

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/validator"
	"ctchen222/tictactoe/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage decodes a raw client message and publishes it on the
// matching inbound channel. Engine rejections are not errors here; they are
// reported on the move_rejected channel.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) error {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		mark, _ := game.ParseMark(message.Mark)
		return r.broker.Publish(ctx, events.MoveChannel, &events.MovePayload{
			Row:  message.Position[0],
			Col:  message.Position[1],
			Mark: mark,
		})
	case proto.TypeNewGame:
		return r.broker.Publish(ctx, events.NewGameChannel, &events.NewGamePayload{RoomID: r.ID})
	case proto.TypeBindPlayer:
		mark, _ := game.ParseMark(message.Mark)
		return r.broker.Publish(ctx, events.BindPlayerChannel, &events.BindPlayerPayload{
			Name: message.Name,
			Mark: mark,
		})
	}
	return nil
}

// handleMove applies a move from the move channel.
func (r *Room) handleMove(ctx context.Context, payload any) error {
	move, err := payloadAs[events.MovePayload](payload)
	if err != nil {
		return err
	}

	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.mark", move.Mark.String()),
		attribute.Int("move.row", move.Row),
		attribute.Int("move.col", move.Col),
	))
	defer moveSpan.End()

	result, err := r.engine.ApplyMove(move.Row, move.Col, move.Mark)
	if err != nil {
		reason := game.Reason(err)
		slog.WarnContext(ctx, "invalid move", "room.id", r.ID, "player.mark", move.Mark.String(),
			"move.row", move.Row, "move.col", move.Col, "reason", reason, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false), attribute.String("move.reason", reason))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.metrics.movesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))

		return r.broadcast(ctx, events.MoveRejectedChannel, &events.MoveRejectedPayload{
			RoomID: r.ID,
			Row:    move.Row,
			Col:    move.Col,
			Mark:   move.Mark,
			Reason: reason,
			Error:  err.Error(),
		})
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true))
	r.metrics.movesApplied.Add(ctx, 1)

	if err := r.broadcastBoard(ctx, result.Board, result.Next, result.Status); err != nil {
		return err
	}

	if !result.Status.IsTerminal() {
		return nil
	}

	moveSpan.SetAttributes(attribute.String("game.result", result.Status.String()))
	r.metrics.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result.Status.State.String())))
	slog.InfoContext(ctx, "Game over", "room.id", r.ID, "status", result.Status.String(), "moves", r.engine.Moves())

	return r.broadcast(ctx, events.GameOverChannel, &events.GameOverPayload{
		RoomID:       r.ID,
		Status:       result.Status,
		Announcement: result.Announcement,
	})
}

// handleNewGame resets the engine.
func (r *Room) handleNewGame(ctx context.Context, payload any) error {
	if _, err := payloadAs[events.NewGamePayload](payload); err != nil {
		return err
	}
	return r.resetGame(ctx)
}

// handleBindPlayer binds a named player to a mark.
func (r *Room) handleBindPlayer(ctx context.Context, payload any) error {
	bind, err := payloadAs[events.BindPlayerPayload](payload)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "room.handleBindPlayer", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.mark", bind.Mark.String()),
	))
	defer span.End()

	if !bind.Mark.Valid() {
		slog.WarnContext(ctx, "ignoring player without a mark", "room.id", r.ID, "player.name", bind.Name)
		span.SetStatus(codes.Error, "Player without a mark")
		return nil
	}

	r.engine.SetPlayer(player.New(bind.Name, bind.Mark))
	slog.InfoContext(ctx, "Player bound", "room.id", r.ID, "player.mark", bind.Mark.String(), "player.name", bind.Name)
	return nil
}
