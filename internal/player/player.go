package player

import "ctchen222/tictactoe/internal/game"

// Player is a display name bound to a mark.
type Player struct {
	name string
	mark game.Mark
}

// New creates a player. Neither the name nor the mark is validated.
func New(name string, mark game.Mark) *Player {
	return &Player{name: name, mark: mark}
}

// Name returns the display name.
func (p *Player) Name() string {
	return p.name
}

// Mark returns the mark the player places.
func (p *Player) Mark() game.Mark {
	return p.mark
}

// SetName renames the player. The mark never changes.
func (p *Player) SetName(name string) {
	p.name = name
}
