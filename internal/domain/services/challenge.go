package services

import (
	"fmt"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// ChallengeOutcome is the decision of a call-out. It names who is
// eliminated; applying the elimination and chain resolution is the state
// machine's job.
type ChallengeOutcome struct {
	EliminatedPlayerID string `json:"eliminated_player_id"`
	WasEventCorrect    bool   `json:"was_event_correct"`
	Explanation        string `json:"explanation"`
	NothingToCheck     bool   `json:"nothing_to_check,omitempty"`
}

// isEventWithinBuffer reports whether candidate chronologically follows
// anchor within the tolerance window. Any backwards step is out,
// regardless of tolerance.
func isEventWithinBuffer(anchor, candidate entities.Fact, tolerance int) bool {
	diff := candidate.Year() - anchor.Year()
	return diff >= 0 && diff <= tolerance
}

// ResolveChallenge decides a challenge against the most recent unresolved
// entry. It is a pure decision and never mutates state.
//
// A challenge with nothing pending is a caller error surfaced as a
// no-elimination outcome. A challenge before any anchor exists always
// eliminates the challenger: the opening move cannot be called out.
func ResolveChallenge(state *entities.GameState, policy *BufferPolicy, challengerID string) ChallengeOutcome {
	disputed := state.LastEntry()
	if disputed == nil || disputed.IsResolved {
		return ChallengeOutcome{
			NothingToCheck: true,
			Explanation:    "there is no unresolved event to call out",
		}
	}

	anchor := state.Anchor()
	if anchor == nil {
		return ChallengeOutcome{
			EliminatedPlayerID: challengerID,
			WasEventCorrect:    true,
			Explanation:        "the opening event cannot be called out; the challenger is eliminated",
		}
	}

	tolerance := policy.ToleranceFor(anchor.Fact.Year())
	diff := disputed.Fact.Year() - anchor.Fact.Year()

	if isEventWithinBuffer(anchor.Fact, disputed.Fact, tolerance) {
		return ChallengeOutcome{
			EliminatedPlayerID: challengerID,
			WasEventCorrect:    true,
			Explanation: fmt.Sprintf("%q (%d) is within %d years of %q (%d); the call-out fails",
				disputed.Fact.Title, disputed.Fact.Year(), tolerance, anchor.Fact.Title, anchor.Fact.Year()),
		}
	}

	reason := fmt.Sprintf("%d years after", diff)
	if diff < 0 {
		reason = fmt.Sprintf("%d years before", -diff)
	}
	return ChallengeOutcome{
		EliminatedPlayerID: disputed.PlayerID,
		WasEventCorrect:    false,
		Explanation: fmt.Sprintf("%q (%d) is %s %q (%d), outside the %d-year buffer; the call-out stands",
			disputed.Fact.Title, disputed.Fact.Year(), reason, anchor.Fact.Title, anchor.Fact.Year(), tolerance),
	}
}
