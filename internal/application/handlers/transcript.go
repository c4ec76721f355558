package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/services"
)

// Transcript is the exportable record of a game: who played, every event in
// chain order with its resolution, and the outcome so far.
type Transcript struct {
	GameID     string                `json:"game_id"`
	Phase      entities.GamePhase    `json:"phase"`
	ExportedAt time.Time             `json:"exported_at"`
	Players    []entities.Player     `json:"players"`
	Chain      []entities.ChainEntry `json:"chain"`
	Winner     string                `json:"winner,omitempty"`
	Rules      []entities.BufferRule `json:"buffer_rules"`
}

// BuildTranscript assembles the transcript from a game snapshot.
func BuildTranscript(state entities.GameState) Transcript {
	t := Transcript{
		GameID:     state.ID,
		Phase:      state.Phase,
		ExportedAt: time.Now(),
		Players:    state.Players,
		Chain:      state.Chain,
		Rules:      state.BufferRules,
	}
	if winner := services.Winner(&state); winner != nil {
		t.Winner = winner.Name
	}
	return t
}

// WriteTranscript encodes the transcript of a game as indented JSON.
func WriteTranscript(w io.Writer, state entities.GameState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildTranscript(state)); err != nil {
		return fmt.Errorf("encoding transcript: %w", err)
	}
	return nil
}
