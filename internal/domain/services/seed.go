package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// DefaultSeedPoolSize is how many distinct valid candidates the seeder
// collects before picking one at random.
const DefaultSeedPoolSize = 5

// seedTopics are combined with the target century to form search phrases.
var seedTopics = []string{"battle", "war", "treaty", "revolt", "disaster"}

// PhraseFunc generates the search phrases for a target century. It is a
// separate seam so tests can inject a fixed phrase list.
type PhraseFunc func(century int) []string

// DefaultSeedPhrases builds era-scoped phrases like "12th century battle".
func DefaultSeedPhrases(century int) []string {
	phrases := make([]string, 0, len(seedTopics))
	for _, topic := range seedTopics {
		phrases = append(phrases, fmt.Sprintf("%s century %s", ordinal(century), topic))
	}
	return phrases
}

// ordinal renders 12 as "12th", 21 as "21st", and so on.
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// CenturyBounds returns the inclusive year range of a century (the 12th
// century is 1101-1200).
func CenturyBounds(century int) (int, int) {
	return (century-1)*100 + 1, century * 100
}

// Seeder acquires the opening event for a game by running era-scoped
// searches through the classifier and picking among the validated results.
// Both the phrase generation and the random pick are injectable for
// deterministic tests.
type Seeder struct {
	classifier *ClassifierService
	phrases    PhraseFunc
	pick       func(n int) int
	poolSize   int
}

// NewSeeder creates a seeder with the default phrases and random source.
func NewSeeder(classifier *ClassifierService) *Seeder {
	return &Seeder{
		classifier: classifier,
		phrases:    DefaultSeedPhrases,
		pick:       rand.IntN,
		poolSize:   DefaultSeedPoolSize,
	}
}

// WithPhrases overrides phrase generation.
func (s *Seeder) WithPhrases(phrases PhraseFunc) *Seeder {
	s.phrases = phrases
	return s
}

// WithPick overrides the random pick among validated candidates.
func (s *Seeder) WithPick(pick func(n int) int) *Seeder {
	s.pick = pick
	return s
}

// Seed finds one event inside the requested century. It collects up to the
// pool size of distinct valid candidates across all phrases, then picks
// uniformly at random. Exhausting every phrase with zero candidates fails
// the seed, wrapped in ErrNotFound so the caller can offer a retry.
func (s *Seeder) Seed(ctx context.Context, century int) (entities.Fact, error) {
	minYear, maxYear := CenturyBounds(century)

	var pool []entities.Fact
	seen := make(map[string]bool)

	for _, phrase := range s.phrases(century) {
		if len(pool) >= s.poolSize {
			break
		}
		facts, err := s.classifier.Classify(ctx, phrase)
		if err != nil {
			// A failed phrase is skipped, not fatal; the next phrase may
			// still produce candidates.
			continue
		}
		for _, fact := range facts {
			if fact.Year() < minYear || fact.Year() > maxYear {
				continue
			}
			key := strings.ToLower(fact.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			pool = append(pool, fact)
			if len(pool) >= s.poolSize {
				break
			}
		}
	}

	if len(pool) == 0 {
		return entities.Fact{}, fmt.Errorf("%w: no seed event in the %s century", entities.ErrNotFound, ordinal(century))
	}
	return pool[s.pick(len(pool))], nil
}
