package proto

import "ctchen222/tictactoe/internal/game"

// Message types sent to the room.
const (
	TypeMove       = "move"
	TypeNewGame    = "new_game"
	TypeBindPlayer = "bind_player"
)

// ClientToServerMessage represents a message from the input loop to the room.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move new_game bind_player"`
	Position []int  `json:"position,omitempty" validate:"required_if=Type move,omitempty,len=2"`
	Mark     string `json:"mark,omitempty" validate:"required_if=Type move,required_if=Type bind_player,omitempty,mark"`
	Name     string `json:"name,omitempty" validate:"max=32"`
}

// ServerToClientMessage represents a message from the room to the presentation layer.
type ServerToClientMessage struct {
	Type         string        `json:"type" validate:"required"`
	Reason       string        `json:"reason,omitempty"`
	Board        [][]game.Mark `json:"board,omitempty"`
	Next         game.Mark     `json:"next,omitempty"`
	Winner       game.Mark     `json:"winner,omitempty"`
	Announcement string        `json:"announcement,omitempty"`
}
