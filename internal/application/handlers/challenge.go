package handlers

import (
	"errors"
	"fmt"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/services"
)

// ChallengeHandler handles call-outs.
type ChallengeHandler struct {
	games *services.GameService
}

// NewChallengeHandler creates a new challenge handler.
func NewChallengeHandler(games *services.GameService) *ChallengeHandler {
	return &ChallengeHandler{games: games}
}

// ChallengeResult reports the outcome of a call-out for rendering.
type ChallengeResult struct {
	OpResult
	EliminatedPlayer string `json:"eliminated_player,omitempty"`
	WasEventCorrect  bool   `json:"was_event_correct"`
	Explanation      string `json:"explanation"`
}

// Handle resolves a call-out by the given player.
func (h *ChallengeHandler) Handle(gameID, challengerID string) (*ChallengeResult, entities.GameState, error) {
	state, outcome, err := h.games.Challenge(gameID, challengerID)
	if err != nil {
		if errors.Is(err, entities.ErrPrecondition) {
			return &ChallengeResult{OpResult: OpResult{Message: err.Error()}}, entities.GameState{}, nil
		}
		return nil, entities.GameState{}, fmt.Errorf("resolving call-out: %w", err)
	}
	if outcome.NothingToCheck {
		return &ChallengeResult{
			OpResult:    OpResult{Message: outcome.Explanation},
			Explanation: outcome.Explanation,
		}, state, nil
	}

	result := &ChallengeResult{
		OpResult:        OpResult{Success: true, Message: outcome.Explanation},
		WasEventCorrect: outcome.WasEventCorrect,
		Explanation:     outcome.Explanation,
	}
	if p := state.PlayerByID(outcome.EliminatedPlayerID); p != nil {
		result.EliminatedPlayer = p.Name
	}
	return result, state, nil
}
