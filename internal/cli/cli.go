package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/render"

	"github.com/chzyer/readline"
)

const helpText = `Commands:
  move <row> <col>   - Place the current player's mark (or just: <row> <col>)
  name <X|O> <name>  - Rename the player holding a mark
  new                - Start a new round
  quit/exit          - Exit the program
  help/?             - Show this help message`

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// MessageHandler receives encoded client messages. *room.Room satisfies it.
type MessageHandler interface {
	HandleMessage(ctx context.Context, rawMessage []byte) error
}

// CLI is the terminal input loop. It keeps no game state of its own.
type CLI struct {
	input  LineReader
	output io.Writer
	room   MessageHandler
	turn   func() game.Mark
	color  bool
}

// New returns a CLI reading from input. turn reports the mark expected to
// move next.
func New(input LineReader, output io.Writer, room MessageHandler, turn func() game.Mark, color bool) *CLI {
	return &CLI{
		input:  input,
		output: output,
		room:   room,
		turn:   turn,
		color:  color,
	}
}

// NewReadline opens a readline instance writing to stdout.
func NewReadline(historyFile string, color bool) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          render.Prompt("tictactoe", color),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

// Run reads commands until quit, EOF, interrupt on an empty line, or ctx is
// done. Bad input is reported and never ends the loop.
func (c *CLI) Run(ctx context.Context) error {
	c.ShowMessage("Welcome to Tic-Tac-Toe!")
	c.ShowMessage("Type 'help' for commands")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		c.input.SetPrompt(c.prompt())
		line, err := c.input.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		cmd := ParseCommand(line)
		switch cmd.Type {
		case CmdNone:
			continue
		case CmdQuit:
			return nil
		case CmdHelp:
			c.ShowMessage(helpText)
			continue
		}

		raw, err := cmd.Message(c.turn())
		if err != nil {
			c.ShowError(err)
			continue
		}
		if err := c.room.HandleMessage(ctx, raw); err != nil {
			slog.DebugContext(ctx, "command failed", "command", cmd.Raw, "error", err)
			c.ShowError(err)
		}
	}
}

func (c *CLI) prompt() string {
	text := "tictactoe"
	if m := c.turn(); m != game.None {
		text += " [" + m.String() + "]"
	}
	return render.Prompt(text, c.color)
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}
