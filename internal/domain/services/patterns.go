// Package services contains domain business logic.
package services

import (
	"regexp"
	"strings"
)

// All classification patterns are compiled once at package level. Each gate
// is a named predicate so it can be tested in isolation.

var (
	// reBareYearQuery matches input that names a year rather than an event,
	// e.g. "1969", "79 AD", "44 BC".
	reBareYearQuery = regexp.MustCompile(`(?i)^\s*\d{1,4}\s*(BC|BCE|AD|CE)?\s*\.?\s*$`)

	// reWhitespace collapses runs of whitespace during query normalization.
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Meta/time-period exclusion: titles that denote calendrical groupings or
// aggregation pages, not single dateable occurrences.
var (
	reTitleBareYear   = regexp.MustCompile(`(?i)^\d{1,4}( (BC|BCE|AD|CE))?$`)
	reTitleCentury    = regexp.MustCompile(`(?i)^\d{1,2}(st|nd|rd|th)[ -]century( (BC|BCE|AD|CE))?$`)
	reTitleMillennium = regexp.MustCompile(`(?i)^\d{1,2}(st|nd|rd|th) millennium( (BC|BCE))?$`)
	reTitleDecade     = regexp.MustCompile(`(?i)^\d{3,4}s( (BC|BCE))?$`)
	reTitleMonthYear  = regexp.MustCompile(`(?i)^(` + monthAlternation + `) \d{1,4}$`)
	reTitleYearIn     = regexp.MustCompile(`(?i)^\d{1,4} in .+$`)
	reTitleListing    = regexp.MustCompile(`(?i)^(list of|lists of|timeline of|timelines of|category:|portal:|index of|outline of|glossary of)`)
)

// Biographical signals in descriptive text.
var (
	reBornParen = regexp.MustCompile(`(?i)\(\s*born\b`)
	reBioPhrase = regexp.MustCompile(`(?i)\b(was|is) an? ((?:[a-z-]+ ){0,4})?(king|queen|emperor|empress|monarch|pharaoh|tsar|sultan|caliph|pope|president|prime minister|chancellor|politician|statesman|stateswoman|general|admiral|commander|explorer|navigator|inventor|engineer|scientist|physicist|chemist|biologist|mathematician|astronomer|philosopher|historian|theologian|economist|writer|author|poet|playwright|novelist|journalist|composer|musician|singer|conductor|painter|sculptor|artist|architect|actor|actress|athlete|aviator|revolutionary|activist|abolitionist|suffragist|nun|saint|bishop|cardinal)\b`)
)

// Event-type gate: positive evidence the candidate denotes an occurrence.
var (
	reEventEvidence = regexp.MustCompile(`(?i)\b(battle|war|siege|crusade|conquest|invasion|campaign|rebellion|revolt|uprising|revolution|mutiny|insurrection|treaty|armistice|ceasefire|accord|concordat|coronation|abdication|assassination|execution|massacre|genocide|pogrom|riot|protest|uprising|strike|boycott|coup|putsch|election|referendum|plebiscite|independence|secession|unification|reunification|partition|annexation|founding|establishment|inauguration|proclamation|declaration|disaster|earthquake|eruption|tsunami|hurricane|cyclone|typhoon|tornado|avalanche|landslide|flood|drought|famine|plague|pandemic|epidemic|outbreak|wildfire|conflagration|shipwreck|sinking|derailment|crash|collision|explosion|bombing|airstrike|attack|raid|ambush|skirmish|blockade|airlift|evacuation|expedition|voyage|circumnavigation|discovery|exploration|landing|launch|spaceflight|flight|summit|conference|congress|convention|synod|council of|exposition|world's fair|olympic|world cup|eclipse|transit of|comet|ceremony|signing|ratification|abolition|emancipation|uprising)\b`)

	// Cultural-work release counts as an occurrence when release language is
	// present alongside a work noun.
	reCulturalWork    = regexp.MustCompile(`(?i)\b(film|movie|album|song|single|novel|book|play|musical|opera|symphony|painting|video game|television series)\b`)
	reReleaseLanguage = regexp.MustCompile(`(?i)\b(released|premiered|published|debuted|first aired|first performed|first exhibited)\b`)
)

// Negative evidence: the candidate is a thing, place, or idea, not an
// occurrence.
var (
	reGeographicEntity = regexp.MustCompile(`(?i)\b(is|was) (a|an|the) ((?:[a-z-]+ ){0,4})?(city|town|village|municipality|commune|settlement|river|mountain|hill|lake|island|archipelago|peninsula|strait|bay|gulf|sea|ocean|desert|valley|plateau|country|kingdom of|state|province|region|county|district|borough|suburb|capital|continent)\b`)
	reAbstractConcept  = regexp.MustCompile(`(?i)\b(is|was) (a|an|the) ((?:[a-z-]+ ){0,4})?(concept|theory|hypothesis|philosophy|doctrine|ideology|term|phrase|word|genre|style|school of|movement in|branch of|field of|study of|form of|type of|method|technique|language|dialect|religion|belief|tradition|custom|sport|game of)\b`)
	reProductOrTech    = regexp.MustCompile(`(?i)\b(is|was) (a|an) ((?:[a-z-]+ ){0,4})?(aircraft|airplane|airliner|helicopter|automobile|car|truck|motorcycle|locomotive|tank|rifle|pistol|cannon|missile|satellite family|computer|console|smartphone|software|operating system|programming language|website|search engine|company|corporation|manufacturer|organization|organisation|institution|agency|band|rock band|orchestra|device|machine|instrument|tool|material|chemical|element|mineral|drug|medication|breed|species)\b`)
	reListPage         = regexp.MustCompile(`(?i)\bthis (is a list|article lists|page lists)\b`)
)

// NormalizeQuery case-folds and whitespace-normalizes a query for use as a
// cache key.
func NormalizeQuery(query string) string {
	return reWhitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(query)), " ")
}

// IsBareYearQuery reports whether the input is purely a year, optionally
// with an era suffix. Such input is rejected before any lookup occurs.
func IsBareYearQuery(query string) bool {
	return reBareYearQuery.MatchString(query)
}

// isMetaTitle reports whether a candidate title denotes a calendrical
// grouping or aggregation page rather than a single occurrence.
func isMetaTitle(title string) bool {
	title = strings.TrimSpace(title)
	return reTitleBareYear.MatchString(title) ||
		reTitleCentury.MatchString(title) ||
		reTitleMillennium.MatchString(title) ||
		reTitleDecade.MatchString(title) ||
		reTitleMonthYear.MatchString(title) ||
		reTitleYearIn.MatchString(title) ||
		reTitleListing.MatchString(title)
}

// isBiographical reports whether descriptive text signals a person. A bare
// lifespan parenthetical is not enough on its own: war articles carry the
// same "(1914–1918)" shape.
func isBiographical(text string) bool {
	return reBornParen.MatchString(text) || reBioPhrase.MatchString(text)
}

// hasEventEvidence reports positive evidence that text describes an
// occurrence, including cultural-work releases.
func hasEventEvidence(text string) bool {
	if reEventEvidence.MatchString(text) {
		return true
	}
	return reCulturalWork.MatchString(text) && reReleaseLanguage.MatchString(text)
}

// hasNonEventEvidence reports negative evidence: geographic entities,
// abstract concepts, products, or list pages.
func hasNonEventEvidence(text string) bool {
	return reGeographicEntity.MatchString(text) ||
		reAbstractConcept.MatchString(text) ||
		reProductOrTech.MatchString(text) ||
		reListPage.MatchString(text)
}

// passesEventGate applies the event-type gate: positive evidence required,
// negative evidence disqualifying.
func passesEventGate(text string) bool {
	return hasEventEvidence(text) && !hasNonEventEvidence(text)
}
