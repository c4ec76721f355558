// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/services"
)

// OpResult is the generic operation payload surfaced to the presentation
// layer.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GameHandler handles lobby and lifecycle operations.
type GameHandler struct {
	games *services.GameService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(games *services.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// Create creates a game with the given host.
func (h *GameHandler) Create(hostName string) (entities.GameState, error) {
	state, err := h.games.CreateGame(hostName)
	if err != nil {
		return entities.GameState{}, fmt.Errorf("creating game: %w", err)
	}
	return state, nil
}

// Join adds a player to a lobby. Contract violations come back as a failed
// OpResult, not an error.
func (h *GameHandler) Join(gameID, name string) (OpResult, entities.GameState, error) {
	state, err := h.games.AddPlayer(gameID, name)
	if err != nil {
		if errors.Is(err, entities.ErrPrecondition) {
			return OpResult{Message: err.Error()}, entities.GameState{}, nil
		}
		return OpResult{}, entities.GameState{}, fmt.Errorf("joining game: %w", err)
	}
	return OpResult{Success: true, Message: fmt.Sprintf("%s joined", name)}, state, nil
}

// Start seeds the chain and begins play. A seed that cannot be found is
// reported as a retryable failure, never as a fatal error.
func (h *GameHandler) Start(ctx context.Context, gameID string) (OpResult, entities.GameState, error) {
	state, err := h.games.StartGame(ctx, gameID)
	switch {
	case err == nil:
		seed := state.Chain[0].Fact
		return OpResult{
			Success: true,
			Message: fmt.Sprintf("starting event: %s (%s)", seed.Title, seed.CalendarDate),
		}, state, nil
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrExternalUnavailable):
		return OpResult{Message: "could not find a starting event; try again"}, entities.GameState{}, nil
	case errors.Is(err, entities.ErrPrecondition):
		return OpResult{Message: err.Error()}, entities.GameState{}, nil
	default:
		return OpResult{}, entities.GameState{}, fmt.Errorf("starting game: %w", err)
	}
}

// Snapshot returns the full current game state for rendering.
func (h *GameHandler) Snapshot(gameID string) (entities.GameState, error) {
	state, err := h.games.Snapshot(gameID)
	if err != nil {
		return entities.GameState{}, fmt.Errorf("reading game state: %w", err)
	}
	return state, nil
}
