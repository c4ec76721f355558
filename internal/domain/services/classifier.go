package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/ports"
)

const (
	// DefaultMaxCandidates is how many validated facts a classification
	// returns at most.
	DefaultMaxCandidates = 3
	// DefaultSearchLimit is how many ranked hits are requested from the
	// external source per query.
	DefaultSearchLimit = 8
)

// ClassifierService turns free-text input into validated, dated historical
// facts. It consults the result cache first and writes every successful
// classification back, keyed by the normalized query text.
type ClassifierService struct {
	source        ports.FactSource
	cache         ports.FactCache
	maxCandidates int
	searchLimit   int
}

// NewClassifierService creates a classifier. cache may be nil, in which case
// every query hits the external source.
func NewClassifierService(source ports.FactSource, cache ports.FactCache) *ClassifierService {
	return &ClassifierService{
		source:        source,
		cache:         cache,
		maxCandidates: DefaultMaxCandidates,
		searchLimit:   DefaultSearchLimit,
	}
}

// WithLimits overrides the candidate and search limits. Zero keeps the
// default.
func (s *ClassifierService) WithLimits(maxCandidates, searchLimit int) *ClassifierService {
	if maxCandidates > 0 {
		s.maxCandidates = maxCandidates
	}
	if searchLimit > 0 {
		s.searchLimit = searchLimit
	}
	return s
}

// Classify resolves free text into ranked candidate facts.
//
// Bare-year input is rejected with ErrPrecondition before any lookup.
// A transport failure is reported wrapped in ErrExternalUnavailable; for
// gameplay the caller treats it exactly like an empty result. An empty
// result with a nil error means "not found" and is never fatal.
func (s *ClassifierService) Classify(ctx context.Context, query string) ([]entities.Fact, error) {
	if IsBareYearQuery(query) {
		return nil, entities.Preconditionf("%q is a year, not an event; name a specific historical event instead", strings.TrimSpace(query))
	}

	key := NormalizeQuery(query)
	if s.cache != nil {
		if facts, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return facts, nil
		}
	}

	hits, err := s.source.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrExternalUnavailable, err)
	}

	var facts []entities.Fact
	for _, hit := range hits {
		if len(facts) >= s.maxCandidates {
			break
		}
		fact, ok := s.classifyCandidate(ctx, hit)
		if !ok {
			continue
		}
		facts = append(facts, fact)
	}

	if len(facts) > 0 && s.cache != nil {
		// Cache write failures do not fail the classification; the write is
		// idempotent and safe to retry on the next query.
		_ = s.cache.Put(ctx, key, facts)
	}

	return facts, nil
}

// classifyCandidate applies the gate cascade to a single ranked hit.
func (s *ClassifierService) classifyCandidate(ctx context.Context, hit ports.SearchHit) (entities.Fact, bool) {
	if isMetaTitle(hit.Title) {
		return entities.Fact{}, false
	}

	detail, err := s.source.Detail(ctx, hit.Title)
	if err != nil || detail == nil {
		return entities.Fact{}, false
	}
	if isMetaTitle(detail.Title) {
		return entities.Fact{}, false
	}

	text := detail.Description + " " + detail.Extract

	// Biographical shortcut: a person becomes "Birth of X" or "Death of X",
	// or is rejected outright. Never falls through to generic extraction.
	if isBiographical(text) {
		return synthesizeBioFact(detail, text)
	}

	if !passesEventGate(text) {
		return entities.Fact{}, false
	}

	extracted, ok := extractEventDate(detail.Extract)
	if !ok {
		return entities.Fact{}, false
	}

	title := detail.Title
	if extracted.startOf {
		title = "Start of " + title
	}

	fact, err := entities.NewFact(title, extracted.date, detail.URL, summarize(detail))
	if err != nil {
		return entities.Fact{}, false
	}
	return fact, true
}

// synthesizeBioFact builds a birth or death fact for a person candidate.
// Birth is attempted before death.
func synthesizeBioFact(detail *ports.PageDetail, text string) (entities.Fact, bool) {
	if date, ok := extractBirthDate(text); ok {
		fact, err := entities.NewFact("Birth of "+detail.Title, date, detail.URL, summarize(detail))
		if err == nil {
			return fact, true
		}
	}
	if date, ok := extractDeathDate(text); ok {
		fact, err := entities.NewFact("Death of "+detail.Title, date, detail.URL, summarize(detail))
		if err == nil {
			return fact, true
		}
	}
	return entities.Fact{}, false
}

// summarize picks a short summary for a fact from the page detail.
func summarize(detail *ports.PageDetail) string {
	if detail.Description != "" {
		return detail.Description
	}
	return firstSentence(detail.Extract)
}

// firstSentence returns the first sentence of text, capped defensively.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, ". "); i > 0 {
		return text[:i+1]
	}
	if len(text) > 240 {
		return text[:240]
	}
	return text
}
