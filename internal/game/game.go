package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultSize is the side length of a standard board.
	DefaultSize = 3
	MinSize     = 3
	MaxSize     = 9
)

// Cell addresses one position on the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a square grid of marks stored row-major.
// The zero value is an empty board with no cells; use NewBoard.
type Board struct {
	size  int
	cells []Mark
}

// NewBoard returns an empty size×size board.
func NewBoard(size int) Board {
	return Board{size: size, cells: make([]Mark, size*size)}
}

// BoardFromRows builds a board from a square slice of rows.
func BoardFromRows(rows [][]Mark) (Board, error) {
	b := NewBoard(len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), len(rows))
		}
		copy(b.cells[r*b.size:], row)
	}
	return b, nil
}

// Size returns the side length.
func (b Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) addresses a cell of b.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the mark at (row, col). It panics when out of bounds.
func (b Board) At(row, col int) Mark {
	return b.cells[row*b.size+col]
}

func (b *Board) set(row, col int, m Mark) {
	b.cells[row*b.size+col] = m
}

// Clone returns a copy that shares no storage with b.
func (b Board) Clone() Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Rows converts the board to a slice of rows.
func (b Board) Rows() [][]Mark {
	rows := make([][]Mark, b.size)
	for r := range rows {
		rows[r] = make([]Mark, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Empty reports whether no cell has been marked.
func (b Board) Empty() bool {
	for _, m := range b.cells {
		if m != None {
			return false
		}
	}
	return true
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if m := b.At(r, c); m == None {
				sb.WriteByte('.')
			} else {
				sb.WriteString(m.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := BoardFromRows(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// State is the phase of a game.
type State uint8

const (
	InProgress State = iota
	Won
	Drawn
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = Won
	case "drawn":
		*s = Drawn
	default:
		return fmt.Errorf("unknown game state %q", text)
	}
	return nil
}

// Status is InProgress, Won(Winner) or Drawn.
type Status struct {
	State  State `json:"state"`
	Winner Mark  `json:"winner,omitempty"`
}

// IsTerminal reports whether no further moves are accepted.
func (s Status) IsTerminal() bool {
	return s.State != InProgress
}

func (s Status) String() string {
	if s.State == Won {
		return fmt.Sprintf("won(%s)", s.Winner)
	}
	return s.State.String()
}

// Lines enumerates every winning line of a size×size board: rows top to
// bottom, columns left to right, the main diagonal, then the anti-diagonal.
func Lines(size int) [][]Cell {
	lines := make([][]Cell, 0, 2*size+2)
	for r := 0; r < size; r++ {
		line := make([]Cell, size)
		for c := range line {
			line[c] = Cell{Row: r, Col: c}
		}
		lines = append(lines, line)
	}
	for c := 0; c < size; c++ {
		line := make([]Cell, size)
		for r := range line {
			line[r] = Cell{Row: r, Col: c}
		}
		lines = append(lines, line)
	}
	diag := make([]Cell, size)
	anti := make([]Cell, size)
	for i := 0; i < size; i++ {
		diag[i] = Cell{Row: i, Col: i}
		anti[i] = Cell{Row: i, Col: size - 1 - i}
	}
	return append(lines, diag, anti)
}

// CheckWinner returns the mark owning the first complete line, or None.
func CheckWinner(board Board) Mark {
	return winnerOn(board, Lines(board.Size()))
}

func winnerOn(board Board, lines [][]Cell) Mark {
	for _, line := range lines {
		first := board.At(line[0].Row, line[0].Col)
		if first == None {
			continue
		}
		complete := true
		for _, cell := range line[1:] {
			if board.At(cell.Row, cell.Col) != first {
				complete = false
				break
			}
		}
		if complete {
			return first
		}
	}
	return None
}

// IsBoardFull scans row-major and stops at the first empty cell.
func IsBoardFull(board Board) bool {
	for _, m := range board.cells {
		if m == None {
			return false
		}
	}
	return true
}
