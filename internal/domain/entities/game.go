package entities

// GamePhase is the lifecycle phase of a game. Transitions are monotonic:
// Lobby -> Playing -> Finished, never backward.
type GamePhase string

// Game phases.
const (
	PhaseLobby    GamePhase = "lobby"
	PhasePlaying  GamePhase = "playing"
	PhaseFinished GamePhase = "finished"
)

// BufferRule maps an inclusive year range to the allowed tolerance, in
// years, between consecutive events. Rules are ordered; the first rule whose
// range contains a year wins.
type BufferRule struct {
	FromYear       int `json:"from_year" yaml:"from_year"`
	ToYear         int `json:"to_year" yaml:"to_year"`
	ToleranceYears int `json:"tolerance_years" yaml:"tolerance_years"`
}

// Contains reports whether year falls in the rule's inclusive range.
func (r BufferRule) Contains(year int) bool {
	return year >= r.FromYear && year <= r.ToYear
}

// DefaultBufferRules covers the full plausible year span with
// non-overlapping ranges that tighten toward the present.
func DefaultBufferRules() []BufferRule {
	return []BufferRule{
		{FromYear: 1, ToYear: 999, ToleranceYears: 50},
		{FromYear: 1000, ToYear: 1499, ToleranceYears: 25},
		{FromYear: 1500, ToYear: 1799, ToleranceYears: 10},
		{FromYear: 1800, ToYear: 1899, ToleranceYears: 5},
		{FromYear: 1900, ToYear: 1999, ToleranceYears: 2},
		{FromYear: 2000, ToYear: 2100, ToleranceYears: 1},
	}
}

// GameState is the authoritative state of one game. It is a plain value:
// transition functions copy it, apply the change, and return the new state,
// so a failed operation can never leave a game half mutated.
type GameState struct {
	ID                 string       `json:"id"`
	Phase              GamePhase    `json:"phase"`
	Players            []Player     `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	Chain              []ChainEntry `json:"chain"`
	BufferRules        []BufferRule `json:"buffer_rules"`
	CurrentTolerance   int          `json:"current_tolerance"`
	AnchorIndex        int          `json:"anchor_index"`
}

// NewGameState creates a game in the Lobby phase with an empty chain.
func NewGameState(id string, rules []BufferRule) GameState {
	return GameState{
		ID:          id,
		Phase:       PhaseLobby,
		BufferRules: rules,
		AnchorIndex: -1,
	}
}

// Clone deep-copies the state so transitions can work on a scratch value.
func (g GameState) Clone() GameState {
	out := g
	out.Players = make([]Player, len(g.Players))
	copy(out.Players, g.Players)
	out.Chain = make([]ChainEntry, len(g.Chain))
	copy(out.Chain, g.Chain)
	out.BufferRules = make([]BufferRule, len(g.BufferRules))
	copy(out.BufferRules, g.BufferRules)
	return out
}

// Anchor returns the entry the chain is currently anchored on, or nil when
// the chain is empty.
func (g *GameState) Anchor() *ChainEntry {
	if g.AnchorIndex < 0 || g.AnchorIndex >= len(g.Chain) {
		return nil
	}
	return &g.Chain[g.AnchorIndex]
}

// LastEntry returns the most recent chain entry, or nil for an empty chain.
func (g *GameState) LastEntry() *ChainEntry {
	if len(g.Chain) == 0 {
		return nil
	}
	return &g.Chain[len(g.Chain)-1]
}

// CurrentPlayer returns the player whose turn it is, or nil outside Playing.
func (g *GameState) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerByID finds a player by ID, or nil.
func (g *GameState) PlayerByID(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// AliveCount returns the number of players still in the game.
func (g *GameState) AliveCount() int {
	n := 0
	for i := range g.Players {
		if g.Players[i].IsAlive {
			n++
		}
	}
	return n
}

// NextAliveIndex scans circularly from the player after `from` for an alive
// player. If the scan wraps without finding a different alive player, `from`
// keeps the turn; the terminal condition is checked separately by game-over
// logic.
func (g *GameState) NextAliveIndex(from int) int {
	if len(g.Players) == 0 {
		return from
	}
	for step := 1; step <= len(g.Players); step++ {
		i := (from + step) % len(g.Players)
		if g.Players[i].IsAlive {
			return i
		}
	}
	return from
}

// HasTitle reports whether any chain entry already carries the given fact
// title (case-insensitive).
func (g *GameState) HasTitle(title string) bool {
	for i := range g.Chain {
		if g.Chain[i].Fact.TitleEquals(title) {
			return true
		}
	}
	return false
}
