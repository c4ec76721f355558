package entities

// Player is a participant in a single game instance.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAlive bool   `json:"is_alive"`
	IsHost  bool   `json:"is_host"`
}

// Eliminate marks the player dead. Elimination is terminal for a game
// instance; there is deliberately no way to flip IsAlive back.
func (p *Player) Eliminate() {
	p.IsAlive = false
}
