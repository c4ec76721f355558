package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/mocks"
	"github.com/ersonp/chrono-core/internal/domain/ports"
	"github.com/ersonp/chrono-core/internal/domain/services"
)

// testHarness wires handlers over a deterministic fact source: one medieval
// battle to seed with and one follow-up event to play.
type testHarness struct {
	source    *mocks.FactSource
	game      *GameHandler
	submit    *SubmitHandler
	challenge *ChallengeHandler
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	source := &mocks.FactSource{
		HitsByQuery: map[string][]ports.SearchHit{
			"seed battle":   {{Title: "Battle of Testfield"}},
			"second battle": {{Title: "Battle of Otherfield"}},
		},
		Details: map[string]*ports.PageDetail{
			"Battle of Testfield": {
				Title:   "Battle of Testfield",
				Extract: "The Battle of Testfield was fought on 1 June 1150 between rival claimants.",
			},
			"Battle of Otherfield": {
				Title:   "Battle of Otherfield",
				Extract: "The Battle of Otherfield was fought on 2 June 1170 between rival claimants.",
			},
		},
	}
	classifier := services.NewClassifierService(source, nil)
	seeder := services.NewSeeder(classifier).
		WithPhrases(func(int) []string { return []string{"seed battle"} }).
		WithPick(func(n int) int { return 0 })
	games := services.NewGameService(services.NewBufferPolicy(nil), seeder, 12)

	return &testHarness{
		source:    source,
		game:      NewGameHandler(games),
		submit:    NewSubmitHandler(classifier, games),
		challenge: NewChallengeHandler(games),
	}
}

func (h *testHarness) startedGame(t *testing.T) entities.GameState {
	t.Helper()
	state, err := h.game.Create("Alice")
	require.NoError(t, err)
	result, state, err := h.game.Join(state.ID, "Bob")
	require.NoError(t, err)
	require.True(t, result.Success)
	result, state, err = h.game.Start(context.Background(), state.ID)
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	return state
}

func TestGameHandler_Lifecycle(t *testing.T) {
	h := newHarness(t)
	state := h.startedGame(t)

	assert.Equal(t, entities.PhasePlaying, state.Phase)
	require.Len(t, state.Chain, 1)
	assert.Equal(t, "Battle of Testfield", state.Chain[0].Fact.Title)

	// Joining after the start is a failed result, not an error.
	result, _, err := h.game.Join(state.ID, "Carol")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestGameHandler_StartWithoutSeedIsRetryable(t *testing.T) {
	h := newHarness(t)
	h.source.HitsByQuery = nil
	h.source.Hits = nil

	state, err := h.game.Create("Alice")
	require.NoError(t, err)
	_, _, err = h.game.Join(state.ID, "Bob")
	require.NoError(t, err)

	result, _, err := h.game.Start(context.Background(), state.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "try again")
}

func TestSubmitHandler_Classify(t *testing.T) {
	h := newHarness(t)

	result, err := h.submit.Classify(context.Background(), "second battle")
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Battle of Otherfield", result.Candidates[0].Title)

	// Bare-year input keeps its instructive message.
	result, err = h.submit.Classify(context.Background(), "1170")
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Contains(t, result.Message, "year, not an event")

	// Unknown queries prompt a rephrase.
	result, err = h.submit.Classify(context.Background(), "florb")
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Contains(t, result.Message, "no dateable historical event")
}

func TestSubmitHandler_SubmitAndChallenge(t *testing.T) {
	h := newHarness(t)
	state := h.startedGame(t)
	alice := state.Players[0].ID
	bob := state.Players[1].ID

	classified, err := h.submit.Classify(context.Background(), "second battle")
	require.NoError(t, err)
	require.Len(t, classified.Candidates, 1)

	result, state, err := h.submit.Submit(state.ID, alice, classified.Candidates[0])
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	assert.Len(t, state.Chain, 2)

	// 1170 is within 25 years of the 1150 seed; Bob's call-out fails.
	outcome, state, err := h.challenge.Handle(state.ID, bob)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.True(t, outcome.WasEventCorrect)
	assert.Equal(t, "Bob", outcome.EliminatedPlayer)
	assert.Equal(t, entities.PhaseFinished, state.Phase)
}

func TestSubmitHandler_OutOfTurnIsFailedResult(t *testing.T) {
	h := newHarness(t)
	state := h.startedGame(t)
	bob := state.Players[1].ID

	fact, err := entities.NewFact("Battle of Elsewhere", entities.CalendarDate{Year: 1160, Month: 0, Day: 1}, "", "")
	require.NoError(t, err)

	result, _, err := h.submit.Submit(state.ID, bob, fact)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "turn")
}

func TestChallengeHandler_NothingPending(t *testing.T) {
	h := newHarness(t)
	state := h.startedGame(t)
	bob := state.Players[1].ID

	outcome, _, err := h.challenge.Handle(state.ID, bob)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Message)
}
