package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/pkg/proto"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdName
	CmdNew
	CmdHelp
	CmdQuit
	CmdUnknown
)

var ErrUsage = errors.New("usage")

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// ParseCommand splits a line into a command. Two leading numbers are read
// as a move.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "move", "m":
		return &Command{Type: CmdMove, Args: args, Raw: input}
	case "name":
		return &Command{Type: CmdName, Args: args, Raw: input}
	case "new", "reset":
		return &Command{Type: CmdNew, Raw: input}
	case "help", "?":
		return &Command{Type: CmdHelp, Raw: input}
	case "quit", "exit", "q":
		return &Command{Type: CmdQuit, Raw: input}
	}
	if _, err := strconv.Atoi(cmd); err == nil {
		return &Command{Type: CmdMove, Args: parts, Raw: input}
	}
	return &Command{Type: CmdUnknown, Args: parts, Raw: input}
}

// Message encodes the command as a proto.ClientToServerMessage. A move
// without an explicit mark is played by turn.
func (c *Command) Message(turn game.Mark) ([]byte, error) {
	var msg proto.ClientToServerMessage

	switch c.Type {
	case CmdMove:
		if len(c.Args) != 2 && len(c.Args) != 3 {
			return nil, fmt.Errorf("%w: move <row> <col> [X|O]", ErrUsage)
		}
		row, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: row %q is not a number", ErrUsage, c.Args[0])
		}
		col, err := strconv.Atoi(c.Args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: column %q is not a number", ErrUsage, c.Args[1])
		}
		mark := turn
		if len(c.Args) == 3 {
			if mark, err = game.ParseMark(c.Args[2]); err != nil || mark == game.None {
				return nil, fmt.Errorf("%w: mark must be X or O", ErrUsage)
			}
		}
		// Once the game is over there is no turn; the room still reports
		// the move so the player sees why it was refused.
		if mark == game.None {
			mark = game.PlayerX
		}
		msg = proto.ClientToServerMessage{
			Type:     proto.TypeMove,
			Position: []int{row, col},
			Mark:     mark.String(),
		}

	case CmdName:
		if len(c.Args) < 2 {
			return nil, fmt.Errorf("%w: name <X|O> <name>", ErrUsage)
		}
		mark, err := game.ParseMark(c.Args[0])
		if err != nil || mark == game.None {
			return nil, fmt.Errorf("%w: mark must be X or O", ErrUsage)
		}
		msg = proto.ClientToServerMessage{
			Type: proto.TypeBindPlayer,
			Mark: mark.String(),
			Name: strings.Join(c.Args[1:], " "),
		}

	case CmdNew:
		msg = proto.ClientToServerMessage{Type: proto.TypeNewGame}

	default:
		return nil, fmt.Errorf("%w: %q is not a game command", ErrUsage, c.Raw)
	}

	return json.Marshal(msg)
}
