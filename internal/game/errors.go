package game

import "errors"

var (
	ErrInvalidPosition = errors.New("position is outside the board")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrInvalidSize     = errors.New("invalid board size")
)

// Reason maps a move rejection to a short machine-readable code.
// Errors that are not engine rejections map to "unknown".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPosition):
		return "invalid_position"
	case errors.Is(err, ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, ErrGameAlreadyOver):
		return "game_already_over"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrInvalidMark):
		return "invalid_mark"
	default:
		return "unknown"
	}
}
