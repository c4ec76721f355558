package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/chrono-core/internal/domain/entities"
	"github.com/ersonp/chrono-core/internal/domain/mocks"
	"github.com/ersonp/chrono-core/internal/domain/ports"
)

func hastingsSource() *mocks.FactSource {
	return &mocks.FactSource{
		Hits: []ports.SearchHit{
			{Title: "Battle of Hastings"},
		},
		Details: map[string]*ports.PageDetail{
			"Battle of Hastings": {
				Title:       "Battle of Hastings",
				Description: "1066 battle between Norman and English forces",
				Extract:     "The Battle of Hastings was fought on 14 October 1066 between the Norman-French army and an English army.",
				URL:         "https://en.wikipedia.org/wiki/Battle_of_Hastings",
			},
		},
	}
}

func TestClassifier_BareYearRejectedBeforeLookup(t *testing.T) {
	source := hastingsSource()
	classifier := NewClassifierService(source, nil)

	for _, query := range []string{"1969", "79 AD", " 1066 "} {
		_, err := classifier.Classify(context.Background(), query)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrPrecondition))
	}
	assert.Equal(t, 0, source.SearchCalls, "bare-year input must never reach the source")
}

func TestClassifier_ClassifiesEvent(t *testing.T) {
	classifier := NewClassifierService(hastingsSource(), nil)

	facts, err := classifier.Classify(context.Background(), "battle of hastings")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "Battle of Hastings", facts[0].Title)
	assert.Equal(t, entities.CalendarDate{Year: 1066, Month: 9, Day: 14}, facts[0].CalendarDate)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Battle_of_Hastings", facts[0].SourceURL)
	assert.NotEmpty(t, facts[0].Summary)
}

func TestClassifier_MetaTitlesSkipped(t *testing.T) {
	source := hastingsSource()
	source.Hits = []ports.SearchHit{
		{Title: "21st century"},
		{Title: "1066"},
		{Title: "List of battles"},
		{Title: "Battle of Hastings"},
	}
	classifier := NewClassifierService(source, nil)

	facts, err := classifier.Classify(context.Background(), "21st century")
	require.NoError(t, err)
	require.Len(t, facts, 1, "meta titles must be skipped, not classified")
	assert.Equal(t, "Battle of Hastings", facts[0].Title)
}

func TestClassifier_BiographicalShortcut(t *testing.T) {
	source := &mocks.FactSource{
		Hits: []ports.SearchHit{{Title: "Napoleon Bonaparte"}},
		Details: map[string]*ports.PageDetail{
			"Napoleon Bonaparte": {
				Title:       "Napoleon Bonaparte",
				Description: "French military commander and emperor",
				Extract:     "Napoleon Bonaparte (born 15 August 1769) was a French emperor and general who rose to prominence during the French Revolution.",
				URL:         "https://en.wikipedia.org/wiki/Napoleon",
			},
		},
	}
	classifier := NewClassifierService(source, nil)

	facts, err := classifier.Classify(context.Background(), "napoleon")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "Birth of Napoleon Bonaparte", facts[0].Title)
	assert.Equal(t, entities.CalendarDate{Year: 1769, Month: 7, Day: 15}, facts[0].CalendarDate)
}

func TestClassifier_NonEventRejected(t *testing.T) {
	source := &mocks.FactSource{
		Hits: []ports.SearchHit{{Title: "Hastings"}},
		Details: map[string]*ports.PageDetail{
			"Hastings": {
				Title:       "Hastings",
				Description: "Town in East Sussex, England",
				Extract:     "Hastings is a town in East Sussex, on the south coast of England, known for the nearby 1066 battle.",
			},
		},
	}
	classifier := NewClassifierService(source, nil)

	facts, err := classifier.Classify(context.Background(), "hastings")
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestClassifier_StartOfPrefixForRanges(t *testing.T) {
	source := &mocks.FactSource{
		Hits: []ports.SearchHit{{Title: "Battle of the Somme"}},
		Details: map[string]*ports.PageDetail{
			"Battle of the Somme": {
				Title:       "Battle of the Somme",
				Description: "First World War battle",
				Extract:     "The Battle of the Somme was fought July 1 - November 18, 1916 on both sides of the upper reaches of the river Somme.",
			},
		},
	}
	classifier := NewClassifierService(source, nil)

	facts, err := classifier.Classify(context.Background(), "somme")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "Start of Battle of the Somme", facts[0].Title)
	assert.Equal(t, entities.CalendarDate{Year: 1916, Month: 6, Day: 1}, facts[0].CalendarDate)
}

func TestClassifier_SourceFailureIsExternalUnavailable(t *testing.T) {
	source := &mocks.FactSource{SearchErr: errors.New("connection refused")}
	classifier := NewClassifierService(source, nil)

	_, err := classifier.Classify(context.Background(), "battle of hastings")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrExternalUnavailable))
}

func TestClassifier_NoCandidatesIsNotAnError(t *testing.T) {
	source := &mocks.FactSource{}
	classifier := NewClassifierService(source, nil)

	facts, err := classifier.Classify(context.Background(), "asdfghjkl")
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestClassifier_CacheHitSkipsSource(t *testing.T) {
	source := hastingsSource()
	cache := &mocks.FactCache{}
	classifier := NewClassifierService(source, cache)

	first, err := classifier.Classify(context.Background(), "Battle of Hastings")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, source.SearchCalls)

	// Same query, different casing and spacing: served from the cache.
	second, err := classifier.Classify(context.Background(), "  battle  of  HASTINGS ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.SearchCalls, "warm query must not reach the source")
}

func TestClassifier_EmptyResultNotCached(t *testing.T) {
	source := &mocks.FactSource{}
	cache := &mocks.FactCache{}
	classifier := NewClassifierService(source, cache)

	_, err := classifier.Classify(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, cache.Entries)
	assert.Equal(t, 1, source.SearchCalls)
}

func TestClassifier_CacheFailureFallsThroughToSource(t *testing.T) {
	source := hastingsSource()
	cache := &mocks.FactCache{GetErr: errors.New("disk error"), PutErr: errors.New("disk error")}
	classifier := NewClassifierService(source, cache)

	facts, err := classifier.Classify(context.Background(), "battle of hastings")
	require.NoError(t, err)
	assert.Len(t, facts, 1)
	assert.Equal(t, 1, source.SearchCalls)
}

func TestClassifier_MaxCandidatesRespected(t *testing.T) {
	source := hastingsSource()
	source.Hits = []ports.SearchHit{
		{Title: "Battle of Hastings"},
		{Title: "Battle of Hastings"},
		{Title: "Battle of Hastings"},
	}
	classifier := NewClassifierService(source, nil).WithLimits(2, 8)

	facts, err := classifier.Classify(context.Background(), "battle")
	require.NoError(t, err)
	assert.Len(t, facts, 2)
}
