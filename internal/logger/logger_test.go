package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestMultiHandler(t *testing.T) {
	t.Run("Each handler keeps its own level", func(t *testing.T) {
		var debug, warn bytes.Buffer
		h := NewMultiHandler(
			slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
			slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		)
		log := slog.New(h)

		log.Debug("board drawn")
		log.Warn("invalid move", "move.row", 3)

		assert.Contains(t, debug.String(), "board drawn")
		assert.Contains(t, debug.String(), "invalid move")
		assert.NotContains(t, warn.String(), "board drawn")
		assert.Contains(t, warn.String(), "move.row=3")
	})

	t.Run("Disabled only when every handler is", func(t *testing.T) {
		h := NewMultiHandler(
			slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
			slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)

		assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("Attributes and groups reach every handler", func(t *testing.T) {
		var a, b bytes.Buffer
		h := NewMultiHandler(slog.NewTextHandler(&a, nil), slog.NewTextHandler(&b, nil))
		log := slog.New(h).With("room.id", "r1").WithGroup("move")

		log.Info("applied", "row", 1)

		for _, out := range []string{a.String(), b.String()} {
			assert.Contains(t, out, "room.id=r1")
			assert.Contains(t, out, "move.row=1")
		}
	})

	t.Run("A failing handler does not starve the others", func(t *testing.T) {
		var out bytes.Buffer
		h := NewMultiHandler(failingHandler{}, slog.NewTextHandler(&out, nil))

		err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "game over", 0))

		require.Error(t, err)
		assert.Contains(t, out.String(), "game over")
	})
}

func TestInit(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var console bytes.Buffer
	Init(&console, slog.LevelWarn)

	slog.Info("hidden")
	slog.Warn("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}
