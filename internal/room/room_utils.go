package room

import "ctchen222/tictactoe/internal/game"

// Engine returns the engine driven by the room.
func (r *Room) Engine() *game.Engine {
	return r.engine
}

// Started reports whether the room is subscribed to its inbound channels.
func (r *Room) Started() bool {
	return len(r.subs) > 0
}
