package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Mark is the content of a cell: empty, X or O.
type Mark uint8

const (
	None Mark = iota
	PlayerX
	PlayerO
)

func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Valid reports whether m is a player mark.
func (m Mark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other player's mark. None has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// ParseMark accepts "X", "O" (any case) and "" for an empty cell.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	case "":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	parsed, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RandomlyChooseFirstPlayer picks the opening mark with equal probability.
func RandomlyChooseFirstPlayer() Mark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}
