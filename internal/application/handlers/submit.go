package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/services"
)

// SubmitHandler handles fact classification and turn submissions.
type SubmitHandler struct {
	classifier *services.ClassifierService
	games      *services.GameService
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(classifier *services.ClassifierService, games *services.GameService) *SubmitHandler {
	return &SubmitHandler{
		classifier: classifier,
		games:      games,
	}
}

// ClassifyResult carries candidate facts for disambiguation, or a message
// explaining why there are none.
type ClassifyResult struct {
	Candidates []entities.Fact `json:"candidates"`
	Message    string          `json:"message,omitempty"`
}

// Classify resolves free text into candidate facts. Lookup failures and
// empty results both surface as "not found" with a retry prompt; the
// bare-year rejection keeps its own instructive message.
func (h *SubmitHandler) Classify(ctx context.Context, query string) (*ClassifyResult, error) {
	facts, err := h.classifier.Classify(ctx, query)
	switch {
	case errors.Is(err, entities.ErrPrecondition):
		return &ClassifyResult{Message: err.Error()}, nil
	case errors.Is(err, entities.ErrExternalUnavailable):
		return &ClassifyResult{Message: "the fact source is unreachable; try again"}, nil
	case err != nil:
		return nil, fmt.Errorf("classifying %q: %w", query, err)
	case len(facts) == 0:
		return &ClassifyResult{Message: fmt.Sprintf("no dateable historical event found for %q; try a different phrasing", query)}, nil
	default:
		return &ClassifyResult{Candidates: facts}, nil
	}
}

// Submit plays a chosen fact as the player's turn.
func (h *SubmitHandler) Submit(gameID, playerID string, fact entities.Fact) (OpResult, entities.GameState, error) {
	state, err := h.games.SubmitFact(gameID, playerID, fact)
	if err != nil {
		if errors.Is(err, entities.ErrPrecondition) || errors.Is(err, entities.ErrMalformedDate) {
			return OpResult{Message: err.Error()}, entities.GameState{}, nil
		}
		return OpResult{}, entities.GameState{}, fmt.Errorf("submitting fact: %w", err)
	}
	return OpResult{
		Success: true,
		Message: fmt.Sprintf("%s played %q (%s)", state.Chain[len(state.Chain)-1].PlayerName, fact.Title, fact.CalendarDate),
	}, state, nil
}
