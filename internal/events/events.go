package events

import "ctchen222/tictactoe/internal/game"

// Channel names
const (
	// Inbound: input collaborator -> room
	MoveChannel       = "move"
	NewGameChannel    = "new_game"
	BindPlayerChannel = "bind_player"

	// Outbound: room -> presentation
	BoardUpdatedChannel = "board_updated"
	GameOverChannel     = "game_over"
	MoveRejectedChannel = "move_rejected"
)

// MovePayload is the payload for the "move" channel.
type MovePayload struct {
	Row  int       `json:"row"`
	Col  int       `json:"col"`
	Mark game.Mark `json:"mark"`
}

// NewGamePayload is the payload for the "new_game" channel.
type NewGamePayload struct {
	RoomID string `json:"room_id"`
}

// BindPlayerPayload is the payload for the "bind_player" channel.
type BindPlayerPayload struct {
	Name string    `json:"name"`
	Mark game.Mark `json:"mark"`
}

// BoardUpdatedPayload is the payload for the "board_updated" channel.
type BoardUpdatedPayload struct {
	RoomID string      `json:"room_id"`
	Board  game.Board  `json:"board"`
	Next   game.Mark   `json:"next"`
	Status game.Status `json:"status"`
}

// GameOverPayload is the payload for the "game_over" channel.
type GameOverPayload struct {
	RoomID       string      `json:"room_id"`
	Status       game.Status `json:"status"`
	Announcement string      `json:"announcement"`
}

// MoveRejectedPayload is the payload for the "move_rejected" channel.
type MoveRejectedPayload struct {
	RoomID string    `json:"room_id"`
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Mark   game.Mark `json:"mark"`
	Reason string    `json:"reason"`
	Error  string    `json:"error"`
}
