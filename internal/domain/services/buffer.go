package services

import "github.com/ersonp/chrono-core/internal/domain/entities"

// DefaultTolerance is the defensive fallback when no buffer rule matches a
// year. A correctly configured rule set covers the full year span, so this
// value should never be observed in play.
const DefaultTolerance = 1

// BufferPolicy maps a calendar year to the allowed tolerance window between
// consecutive events. Rules are scanned in order; the first match wins.
type BufferPolicy struct {
	rules []entities.BufferRule
}

// NewBufferPolicy creates a policy from an ordered rule set. An empty set
// falls back to the default rules.
func NewBufferPolicy(rules []entities.BufferRule) *BufferPolicy {
	if len(rules) == 0 {
		rules = entities.DefaultBufferRules()
	}
	return &BufferPolicy{rules: rules}
}

// Rules returns the active rule set.
func (p *BufferPolicy) Rules() []entities.BufferRule {
	return p.rules
}

// ToleranceFor returns the tolerance in years for events anchored at the
// given year.
func (p *BufferPolicy) ToleranceFor(year int) int {
	for _, rule := range p.rules {
		if rule.Contains(year) {
			return rule.ToleranceYears
		}
	}
	return DefaultTolerance
}
