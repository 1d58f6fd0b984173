package game

import (
	"fmt"

	"ctchen222/tictactoe/internal/validator"
)

const (
	DefaultPlayerXName = "Player 1"
	DefaultPlayerOName = "Player 2"

	// DrawAnnouncement is shown when the board fills up without a line.
	DrawAnnouncement = "This round is draw"
)

// Participant is whoever is bound to a mark.
type Participant interface {
	Name() string
	Mark() Mark
}

type placeholder struct {
	name string
	mark Mark
}

func (p placeholder) Name() string { return p.name }
func (p placeholder) Mark() Mark   { return p.mark }

// MoveResult describes the engine state right after an accepted move.
type MoveResult struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Mark   Mark   `json:"mark"`
	Status Status `json:"status"`
	Board  Board  `json:"board"`
	// Next is None once the game is over.
	Next Mark `json:"next"`
	// Announcement is set only on a terminal status.
	Announcement string `json:"announcement,omitempty"`
}

type options struct {
	Size  int `validate:"min=3,max=9"`
	XName string
	OName string
	First Mark
}

// Option configures an Engine.
type Option func(*options)

// WithSize sets the board side length.
func WithSize(size int) Option {
	return func(o *options) { o.Size = size }
}

// WithDefaultNames sets the placeholder names used at start and after Reset.
func WithDefaultNames(xName, oName string) Option {
	return func(o *options) {
		o.XName = xName
		o.OName = oName
	}
}

// WithFirstMark sets which mark opens every game. None picks at random on
// each start.
func WithFirstMark(m Mark) Option {
	return func(o *options) { o.First = m }
}

// Engine owns one game: the board, the two player bindings and the status.
// It is not safe for concurrent use.
type Engine struct {
	opts    options
	lines   [][]Cell
	board   Board
	status  Status
	next    Mark
	moves   int
	players map[Mark]Participant
}

// NewEngine returns an engine with an empty board and default players.
func NewEngine(opts ...Option) (*Engine, error) {
	o := options{
		Size:  DefaultSize,
		XName: DefaultPlayerXName,
		OName: DefaultPlayerOName,
		First: PlayerX,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validator.GetValidator().Struct(o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, err)
	}
	if o.First != None && !o.First.Valid() {
		return nil, fmt.Errorf("%w: opening mark %d", ErrInvalidMark, o.First)
	}

	e := &Engine{
		opts:  o,
		lines: Lines(o.Size),
	}
	e.Reset()
	return e, nil
}

// SetPlayer binds p to the slot of its mark, replacing the previous binding.
// It never touches the board.
func (e *Engine) SetPlayer(p Participant) {
	if p == nil || !p.Mark().Valid() {
		return
	}
	e.players[p.Mark()] = p
}

// Player returns the participant bound to m, or nil for None.
func (e *Engine) Player(m Mark) Participant {
	return e.players[m]
}

// ApplyMove places mark at (row, col) and evaluates the result.
// A rejected move leaves the engine unchanged.
func (e *Engine) ApplyMove(row, col int, mark Mark) (MoveResult, error) {
	if e.status.IsTerminal() {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrGameAlreadyOver, e.status)
	}
	if !e.board.InBounds(row, col) {
		return MoveResult{}, fmt.Errorf("%w: (%d, %d) on a %dx%d board", ErrInvalidPosition, row, col, e.opts.Size, e.opts.Size)
	}
	if !mark.Valid() {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidMark, mark)
	}
	if mark != e.next {
		return MoveResult{}, fmt.Errorf("%w: %s to move, got %s", ErrNotYourTurn, e.next, mark)
	}
	if held := e.board.At(row, col); held != None {
		return MoveResult{}, fmt.Errorf("%w: (%d, %d) holds %s", ErrCellOccupied, row, col, held)
	}

	e.board.set(row, col, mark)
	e.moves++

	result := MoveResult{Row: row, Col: col, Mark: mark}
	if winner := winnerOn(e.board, e.lines); winner != None {
		e.status = Status{State: Won, Winner: winner}
		e.next = None
		result.Announcement = e.displayName(winner) + " wins"
	} else if IsBoardFull(e.board) {
		e.status = Status{State: Drawn}
		e.next = None
		result.Announcement = DrawAnnouncement
	} else {
		e.next = mark.Opponent()
	}

	result.Status = e.status
	result.Board = e.board.Clone()
	result.Next = e.next
	return result, nil
}

// Reset clears the board, restores the default players and reopens the game.
func (e *Engine) Reset() {
	e.board = NewBoard(e.opts.Size)
	e.status = Status{}
	e.moves = 0
	e.players = map[Mark]Participant{
		PlayerX: placeholder{name: e.opts.XName, mark: PlayerX},
		PlayerO: placeholder{name: e.opts.OName, mark: PlayerO},
	}
	e.next = e.opts.First
	if e.next == None {
		e.next = RandomlyChooseFirstPlayer()
	}
}

// Board returns a copy of the current board.
func (e *Engine) Board() Board {
	return e.board.Clone()
}

func (e *Engine) Status() Status {
	return e.status
}

// Next returns the mark expected to move, or None when the game is over.
func (e *Engine) Next() Mark {
	return e.next
}

func (e *Engine) Size() int {
	return e.opts.Size
}

// Moves counts the moves accepted since the last reset.
func (e *Engine) Moves() int {
	return e.moves
}

// displayName falls back to the mark itself for an unnamed player.
func (e *Engine) displayName(m Mark) string {
	if p := e.players[m]; p != nil && p.Name() != "" {
		return p.Name()
	}
	return m.String()
}
