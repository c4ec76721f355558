package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

func TestBufferPolicy_ToleranceFor(t *testing.T) {
	policy := NewBufferPolicy(nil)

	tests := []struct {
		year      int
		tolerance int
	}{
		{1, 50},
		{500, 50},
		{999, 50},
		{1000, 25},
		{1499, 25},
		{1500, 10},
		{1799, 10},
		{1800, 5},
		{1899, 5},
		{1900, 2},
		{1999, 2},
		{2000, 1},
		{2100, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.tolerance, policy.ToleranceFor(tt.year), "year %d", tt.year)
	}
}

func TestBufferPolicy_FirstMatchWins(t *testing.T) {
	policy := NewBufferPolicy([]entities.BufferRule{
		{FromYear: 1, ToYear: 2100, ToleranceYears: 30},
		{FromYear: 1500, ToYear: 1799, ToleranceYears: 10},
	})
	assert.Equal(t, 30, policy.ToleranceFor(1600), "the first matching rule decides")
}

func TestBufferPolicy_DefaultWhenNoRuleMatches(t *testing.T) {
	policy := NewBufferPolicy([]entities.BufferRule{
		{FromYear: 1500, ToYear: 1799, ToleranceYears: 10},
	})
	assert.Equal(t, DefaultTolerance, policy.ToleranceFor(1066))
}

func TestBufferPolicy_EmptyRulesFallBackToDefaults(t *testing.T) {
	policy := NewBufferPolicy(nil)
	assert.Equal(t, entities.DefaultBufferRules(), policy.Rules())
}
