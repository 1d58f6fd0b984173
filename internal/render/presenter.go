package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ctchen222/tictactoe/internal/events"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/pkg/proto"
)

// Subscriber is the part of the event bus a presenter needs.
type Subscriber interface {
	Subscribe(channel string, h events.Handler) *events.Subscription
	Unsubscribe(channel string, sub *events.Subscription) bool
}

type Option func(*Presenter)

// WithColor turns the ANSI color theme on or off.
func WithColor(on bool) Option {
	return func(p *Presenter) {
		if on {
			p.theme = colorTheme
		} else {
			p.theme = plainTheme
		}
	}
}

// WithJSON writes one proto.ServerToClientMessage per line instead of text.
func WithJSON() Option {
	return func(p *Presenter) { p.json = true }
}

// Presenter draws outbound room events to a writer.
type Presenter struct {
	out   io.Writer
	theme theme
	json  bool
	bus   Subscriber
	subs  []*events.Subscription
}

func NewPresenter(w io.Writer, opts ...Option) *Presenter {
	p := &Presenter{out: w, theme: plainTheme}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach subscribes the presenter to the outbound channels of bus. A
// presenter attached elsewhere is detached first.
func (p *Presenter) Attach(bus Subscriber) {
	p.Detach()
	p.bus = bus
	p.subs = []*events.Subscription{
		bus.Subscribe(events.BoardUpdatedChannel, p.onBoardUpdated),
		bus.Subscribe(events.GameOverChannel, p.onGameOver),
		bus.Subscribe(events.MoveRejectedChannel, p.onMoveRejected),
	}
}

func (p *Presenter) Detach() {
	if p.bus == nil {
		return
	}
	for _, sub := range p.subs {
		p.bus.Unsubscribe(sub.Channel(), sub)
	}
	p.bus = nil
	p.subs = nil
}

func (p *Presenter) onBoardUpdated(ctx context.Context, payload any) error {
	update, ok := payload.(*events.BoardUpdatedPayload)
	if !ok {
		return fmt.Errorf("render: unexpected payload %T on %s", payload, events.BoardUpdatedChannel)
	}
	if p.json {
		return p.writeJSON(proto.ServerToClientMessage{
			Type:  events.BoardUpdatedChannel,
			Board: update.Board.Rows(),
			Next:  update.Next,
		})
	}

	var sb strings.Builder
	sb.WriteString(p.Board(update.Board))
	if update.Next != game.None {
		sb.WriteString(fmt.Sprintf("Next: %s\n", p.mark(update.Next)))
	}
	return p.write(sb.String())
}

func (p *Presenter) onGameOver(ctx context.Context, payload any) error {
	over, ok := payload.(*events.GameOverPayload)
	if !ok {
		return fmt.Errorf("render: unexpected payload %T on %s", payload, events.GameOverChannel)
	}
	if p.json {
		return p.writeJSON(proto.ServerToClientMessage{
			Type:         events.GameOverChannel,
			Winner:       over.Status.Winner,
			Announcement: over.Announcement,
		})
	}
	return p.write(p.theme.paint(p.theme.notice, over.Announcement) + "\n" +
		"Start a new game with 'new'.\n")
}

func (p *Presenter) onMoveRejected(ctx context.Context, payload any) error {
	rejected, ok := payload.(*events.MoveRejectedPayload)
	if !ok {
		return fmt.Errorf("render: unexpected payload %T on %s", payload, events.MoveRejectedChannel)
	}
	if p.json {
		return p.writeJSON(proto.ServerToClientMessage{
			Type:   events.MoveRejectedChannel,
			Reason: rejected.Reason,
		})
	}
	return p.write(fmt.Sprintf("Move (%d, %d) rejected: %s\n", rejected.Row, rejected.Col, describe(rejected.Reason)))
}

// Board renders b with row and column indices. Empty cells are drawn as '.'.
func (p *Presenter) Board(b game.Board) string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	for c := 0; c < b.Size(); c++ {
		sb.WriteString(" " + p.theme.paint(p.theme.header, fmt.Sprint(c)))
	}
	sb.WriteString("\n")

	for r := 0; r < b.Size(); r++ {
		sb.WriteString(p.theme.paint(p.theme.header, fmt.Sprint(r)) + " ")
		for c := 0; c < b.Size(); c++ {
			sb.WriteString(" " + p.mark(b.At(r, c)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (p *Presenter) mark(m game.Mark) string {
	switch m {
	case game.PlayerX:
		return p.theme.paint(p.theme.x, m.String())
	case game.PlayerO:
		return p.theme.paint(p.theme.o, m.String())
	}
	return p.theme.paint(p.theme.empty, ".")
}

func (p *Presenter) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (p *Presenter) writeJSON(msg proto.ServerToClientMessage) error {
	if err := json.NewEncoder(p.out).Encode(msg); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func describe(reason string) string {
	switch reason {
	case "invalid_position":
		return "that cell is off the board"
	case "cell_occupied":
		return "that cell is already taken"
	case "game_already_over":
		return "the game is over"
	case "not_your_turn":
		return "it is not that player's turn"
	case "invalid_mark":
		return "unknown mark"
	}
	return reason
}
