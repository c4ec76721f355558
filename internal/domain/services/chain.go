package services

import (
	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// Chain transitions are pure: they copy the incoming state, apply the
// change, and return the new state. A returned error means the input state
// is unchanged and must keep being used.

// AppendSubmission appends an unresolved entry for a player's fact. It
// rejects a second unresolved entry and duplicate fact titles
// (case-insensitive) anywhere in the chain.
func AppendSubmission(state entities.GameState, playerID, playerName string, fact entities.Fact) (entities.GameState, error) {
	if last := state.LastEntry(); last != nil && !last.IsResolved {
		return state, entities.Preconditionf("an unresolved submission by %s is already pending", last.PlayerName)
	}
	if state.HasTitle(fact.Title) {
		return state, entities.Preconditionf("%q has already been played this game", fact.Title)
	}

	next := state.Clone()
	next.Chain = append(next.Chain, entities.NewChainEntry(playerID, playerName, fact))
	return next, nil
}

// ResolveLast marks the most recent entry resolved with the given validity
// and recomputes the anchor. A valid entry becomes the new anchor; an
// invalid one stays in the visible chain but never anchors, so the previous
// anchor keeps standing.
func ResolveLast(state entities.GameState, wasValid bool) (entities.GameState, error) {
	last := state.LastEntry()
	if last == nil {
		return state, entities.Preconditionf("cannot resolve an empty chain")
	}
	if last.IsResolved {
		return state, entities.Preconditionf("the last submission is already resolved")
	}

	next := state.Clone()
	next.Chain[len(next.Chain)-1].Resolve(wasValid)
	if wasValid {
		next.AnchorIndex = len(next.Chain) - 1
	}
	return next, nil
}
