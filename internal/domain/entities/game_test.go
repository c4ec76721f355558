package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBufferRules_CoverFullSpan(t *testing.T) {
	rules := DefaultBufferRules()
	require.NotEmpty(t, rules)

	assert.Equal(t, MinYear, rules[0].FromYear)
	assert.Equal(t, MaxYear, rules[len(rules)-1].ToYear)
	for i := 1; i < len(rules); i++ {
		assert.Equal(t, rules[i-1].ToYear+1, rules[i].FromYear,
			"rule %d must pick up exactly where rule %d ends", i, i-1)
	}
}

func TestBufferRule_Contains(t *testing.T) {
	rule := BufferRule{FromYear: 1500, ToYear: 1799, ToleranceYears: 10}
	assert.True(t, rule.Contains(1500))
	assert.True(t, rule.Contains(1799))
	assert.False(t, rule.Contains(1499))
	assert.False(t, rule.Contains(1800))
}

func TestGameState_Clone_IsDeep(t *testing.T) {
	state := NewGameState("g1", DefaultBufferRules())
	state.Players = append(state.Players, Player{ID: "p1", Name: "Alice", IsAlive: true})
	fact := Fact{Title: "Battle of Hastings", CalendarDate: CalendarDate{Year: 1066, Month: 9, Day: 14}}
	state.Chain = append(state.Chain, NewChainEntry("p1", "Alice", fact))

	clone := state.Clone()
	clone.Players[0].IsAlive = false
	clone.Chain[0].Resolve(true)
	clone.BufferRules[0].ToleranceYears = 99

	assert.True(t, state.Players[0].IsAlive)
	assert.False(t, state.Chain[0].IsResolved)
	assert.NotEqual(t, 99, state.BufferRules[0].ToleranceYears)
}

func TestGameState_Anchor(t *testing.T) {
	state := NewGameState("g1", nil)
	assert.Nil(t, state.Anchor(), "empty chain has no anchor")

	fact := Fact{Title: "Seed", CalendarDate: CalendarDate{Year: 1150, Month: 0, Day: 1}}
	state.Chain = append(state.Chain, NewSeedEntry(fact))
	state.AnchorIndex = 0
	require.NotNil(t, state.Anchor())
	assert.Equal(t, "Seed", state.Anchor().Fact.Title)
}

func TestGameState_NextAliveIndex(t *testing.T) {
	state := NewGameState("g1", nil)
	state.Players = []Player{
		{ID: "a", Name: "Alice", IsAlive: true},
		{ID: "b", Name: "Bob", IsAlive: false},
		{ID: "c", Name: "Carol", IsAlive: true},
	}

	assert.Equal(t, 2, state.NextAliveIndex(0), "dead Bob is skipped")
	assert.Equal(t, 0, state.NextAliveIndex(2), "scan wraps around")

	state.Players[0].IsAlive = false
	assert.Equal(t, 2, state.NextAliveIndex(2), "sole survivor keeps the turn")
}

func TestGameState_HasTitle(t *testing.T) {
	state := NewGameState("g1", nil)
	fact := Fact{Title: "Battle of Hastings", CalendarDate: CalendarDate{Year: 1066, Month: 9, Day: 14}}
	state.Chain = append(state.Chain, NewChainEntry("p1", "Alice", fact))

	assert.True(t, state.HasTitle("battle of hastings"))
	assert.False(t, state.HasTitle("Battle of Agincourt"))
}

func TestChainEntry_Resolve(t *testing.T) {
	fact := Fact{Title: "Seed", CalendarDate: CalendarDate{Year: 1150, Month: 0, Day: 1}}

	entry := NewChainEntry("p1", "Alice", fact)
	assert.False(t, entry.IsResolved)
	assert.Nil(t, entry.WasValid)

	entry.Resolve(false)
	require.True(t, entry.IsResolved)
	require.NotNil(t, entry.WasValid)
	assert.False(t, *entry.WasValid)

	seed := NewSeedEntry(fact)
	assert.Equal(t, SystemPlayerID, seed.PlayerID)
	require.True(t, seed.IsResolved)
	require.NotNil(t, seed.WasValid)
	assert.True(t, *seed.WasValid)
}

func TestPlayer_Eliminate(t *testing.T) {
	p := Player{ID: "p1", Name: "Alice", IsAlive: true}
	p.Eliminate()
	assert.False(t, p.IsAlive)
}
