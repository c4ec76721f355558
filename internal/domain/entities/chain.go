package entities

import "time"

// SystemPlayerID identifies the synthetic actor that submits the seed event
// when a game starts.
const SystemPlayerID = "system"

// ChainEntry is one submitted fact in the game's event chain. Entries are
// owned by the chain and never mutated after creation, except for the single
// resolution transition applied by Resolve.
type ChainEntry struct {
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	Fact        Fact      `json:"fact"`
	IsResolved  bool      `json:"is_resolved"`
	WasValid    *bool     `json:"was_valid,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewChainEntry creates an unresolved entry for a player submission.
func NewChainEntry(playerID, playerName string, fact Fact) ChainEntry {
	return ChainEntry{
		PlayerID:    playerID,
		PlayerName:  playerName,
		Fact:        fact,
		SubmittedAt: time.Now(),
	}
}

// NewSeedEntry creates the pre-resolved entry that opens a game.
func NewSeedEntry(fact Fact) ChainEntry {
	entry := NewChainEntry(SystemPlayerID, "System", fact)
	entry.Resolve(true)
	return entry
}

// Resolve records the outcome of a challenge against this entry. It is the
// one permitted mutation of a chain entry and must be applied at most once.
func (e *ChainEntry) Resolve(wasValid bool) {
	v := wasValid
	e.IsResolved = true
	e.WasValid = &v
}
