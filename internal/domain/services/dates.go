package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ersonp/chrono-core/internal/domain/entities"
)

// monthAlternation is shared by every date pattern.
const monthAlternation = `January|February|March|April|May|June|July|August|September|October|November|December`

// monthIndex maps a lowercased month name to its 0-based index.
var monthIndex = map[string]int{
	"january": 0, "february": 1, "march": 2, "april": 3,
	"may": 4, "june": 5, "july": 6, "august": 7,
	"september": 8, "october": 9, "november": 10, "december": 11,
}

// dash matches the hyphen, en dash, and em dash variants that appear in
// source extracts.
const dash = `[–—-]`

// Date-range patterns, priority (a). The start date is always used and the
// fact title gets a "Start of " prefix.
var (
	reSameMonthDayRange = regexp.MustCompile(`(?i)\b(` + monthAlternation + `) (\d{1,2})\s*` + dash + `\s*\d{1,2},? (\d{3,4})\b`)
	reDayRangeThenMonth = regexp.MustCompile(`(?i)\b(\d{1,2})\s*` + dash + `\s*\d{1,2} (` + monthAlternation + `),? (\d{3,4})\b`)
	reCrossMonthRange   = regexp.MustCompile(`(?i)\b(` + monthAlternation + `) (\d{1,2})(?:,? (\d{3,4}))?\s*` + dash + `\s*(?:` + monthAlternation + `) \d{1,2},? (\d{3,4})\b`)
	reCrossMonthRangeDF = regexp.MustCompile(`(?i)\b(\d{1,2}) (` + monthAlternation + `)(?: (\d{3,4}))?\s*` + dash + `\s*\d{1,2} (?:` + monthAlternation + `),? (\d{3,4})\b`)
	reReleaseRange      = regexp.MustCompile(`(?i)\b(?:released|published|broadcast|serialized|serialised|ran|aired)\b[^.]{0,40}?\bfrom (` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\b`)
	reReleaseRangeDF    = regexp.MustCompile(`(?i)\b(?:released|published|broadcast|serialized|serialised|ran|aired)\b[^.]{0,40}?\bfrom (\d{1,2}) (` + monthAlternation + `) (\d{3,4})\b`)
)

// Release/publication with a single complete date, priority (b).
var (
	reReleaseSingle   = regexp.MustCompile(`(?i)\b(?:released|published|premiered|debuted|first aired|first performed|first exhibited)\b[^.]{0,40}?\b(?:on |in )?(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\b`)
	reReleaseSingleDF = regexp.MustCompile(`(?i)\b(?:released|published|premiered|debuted|first aired|first performed|first exhibited)\b[^.]{0,40}?\b(?:on |in )?(\d{1,2}) (` + monthAlternation + `) (\d{3,4})\b`)
)

// Single complete dates, priority (c).
var (
	reCompleteMDY = regexp.MustCompile(`(?i)\b(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\b`)
	reCompleteDMY = regexp.MustCompile(`(?i)\b(\d{1,2}) (` + monthAlternation + `),? (\d{3,4})\b`)
)

// Fallbacks, priorities (d) and (e).
var (
	reYearRange         = regexp.MustCompile(`\b([1-9]\d{2,3})\s*` + dash + `\s*(\d{2,4})\b`)
	reStartVerbThenYear = regexp.MustCompile(`(?i)\b(?:began|begun|started|starting|broke out|erupted|occurred|took place|happened|commenced|was fought|was waged|was launched|was signed|was held|was founded|was established|was proclaimed|was declared)\b[^.]{0,30}?\b([1-9]\d{2,3})\b`)
	reYearThenStartVerb = regexp.MustCompile(`(?i)\b(?:in|on) ([1-9]\d{2,3})\b[^.]{0,40}?\b(?:began|broke out|erupted|occurred|took place|happened|started|commenced|was fought|was signed|was held|was founded|was established)\b`)
)

// Birth/death extraction for the biographical shortcut.
var (
	reBornParenMDY = regexp.MustCompile(`(?i)\(\s*born\b[^)]*?\b(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})`)
	reBornParenDMY = regexp.MustCompile(`(?i)\(\s*born\b[^)]*?\b(\d{1,2}) (` + monthAlternation + `) (\d{3,4})`)
	reBornProse    = regexp.MustCompile(`(?i)\bborn\b[^.]{0,40}?\b(?:on )?(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\b`)
	reBornProseDF  = regexp.MustCompile(`(?i)\bborn\b[^.]{0,40}?\b(?:on )?(\d{1,2}) (` + monthAlternation + `) (\d{3,4})\b`)
	reLifeStartMDY = regexp.MustCompile(`(?i)\(\s*(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\s*` + dash)
	reLifeStartDMY = regexp.MustCompile(`(?i)\(\s*(\d{1,2}) (` + monthAlternation + `) (\d{3,4})\s*` + dash)
	reDiedProse    = regexp.MustCompile(`(?i)\bdied\b[^.]{0,40}?\b(?:on )?(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\b`)
	reDiedProseDF  = regexp.MustCompile(`(?i)\bdied\b[^.]{0,40}?\b(?:on )?(\d{1,2}) (` + monthAlternation + `) (\d{3,4})\b`)
	reLifeEndMDY   = regexp.MustCompile(`(?i)` + dash + `\s*(` + monthAlternation + `) (\d{1,2}),? (\d{3,4})\s*\)`)
	reLifeEndDMY   = regexp.MustCompile(`(?i)` + dash + `\s*(\d{1,2}) (` + monthAlternation + `) (\d{3,4})\s*\)`)
)

// extractedDate is a candidate date plus whether the fact title should be
// prefixed with "Start of ".
type extractedDate struct {
	date    entities.CalendarDate
	startOf bool
}

// buildDate converts matched month name, day, and year strings into a
// CalendarDate and validates it.
func buildDate(monthName, dayStr, yearStr string) (entities.CalendarDate, bool) {
	month, ok := monthIndex[strings.ToLower(monthName)]
	if !ok {
		return entities.CalendarDate{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return entities.CalendarDate{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return entities.CalendarDate{}, false
	}
	d := entities.CalendarDate{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return entities.CalendarDate{}, false
	}
	return d, true
}

// extractDateRange tries the explicit-range patterns, priority (a).
func extractDateRange(text string) (extractedDate, bool) {
	if m := reSameMonthDayRange.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	if m := reDayRangeThenMonth.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	if m := reCrossMonthRange.FindStringSubmatch(text); m != nil {
		year := m[3]
		if year == "" {
			year = m[4]
		}
		if d, ok := buildDate(m[1], m[2], year); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	if m := reCrossMonthRangeDF.FindStringSubmatch(text); m != nil {
		year := m[3]
		if year == "" {
			year = m[4]
		}
		if d, ok := buildDate(m[2], m[1], year); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	if m := reReleaseRange.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	if m := reReleaseRangeDF.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return extractedDate{date: d, startOf: true}, true
		}
	}
	return extractedDate{}, false
}

// extractReleaseDate tries release/publication statements with a single
// complete date, priority (b).
func extractReleaseDate(text string) (extractedDate, bool) {
	if m := reReleaseSingle.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return extractedDate{date: d}, true
		}
	}
	if m := reReleaseSingleDF.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return extractedDate{date: d}, true
		}
	}
	return extractedDate{}, false
}

// extractCompleteDate tries a single "Month Day, Year" or "Day Month Year"
// date, priority (c). When both forms appear, the one occurring earlier in
// the text wins.
func extractCompleteDate(text string) (extractedDate, bool) {
	mdyLoc := reCompleteMDY.FindStringSubmatchIndex(text)
	dmyLoc := reCompleteDMY.FindStringSubmatchIndex(text)

	useMDY := mdyLoc != nil && (dmyLoc == nil || mdyLoc[0] <= dmyLoc[0])
	if useMDY {
		m := reCompleteMDY.FindStringSubmatch(text[mdyLoc[0]:])
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return extractedDate{date: d}, true
		}
	}
	if dmyLoc != nil {
		m := reCompleteDMY.FindStringSubmatch(text[dmyLoc[0]:])
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return extractedDate{date: d}, true
		}
	}
	return extractedDate{}, false
}

// extractYearRange tries a bare year range such as a war duration, priority
// (d). January 1 of the start year is used.
func extractYearRange(text string) (extractedDate, bool) {
	for _, m := range reYearRange.FindAllStringSubmatch(text, 8) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		// "1914–18" style abbreviated end year.
		if end < 100 {
			end = (start/100)*100 + end
		}
		if end < start || end-start > 200 {
			continue
		}
		d := entities.CalendarDate{Year: start, Month: 0, Day: 1}
		if err := d.Validate(); err != nil {
			continue
		}
		return extractedDate{date: d, startOf: true}, true
	}
	return extractedDate{}, false
}

// extractStartYear tries a single year near a start/occurrence verb,
// priority (e). January 1 is used, with no title prefix.
func extractStartYear(text string) (extractedDate, bool) {
	var yearStr string
	if m := reStartVerbThenYear.FindStringSubmatch(text); m != nil {
		yearStr = m[1]
	} else if m := reYearThenStartVerb.FindStringSubmatch(text); m != nil {
		yearStr = m[1]
	} else {
		return extractedDate{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return extractedDate{}, false
	}
	d := entities.CalendarDate{Year: year, Month: 0, Day: 1}
	if err := d.Validate(); err != nil {
		return extractedDate{}, false
	}
	return extractedDate{date: d}, true
}

// eventDateExtractors, in priority order. The first extractor to produce a
// valid date wins; the classifier does not keep looking for a "better" one.
var eventDateExtractors = []func(string) (extractedDate, bool){
	extractDateRange,
	extractReleaseDate,
	extractCompleteDate,
	extractYearRange,
	extractStartYear,
}

// extractEventDate runs the prioritized extractor cascade.
func extractEventDate(text string) (extractedDate, bool) {
	for _, extract := range eventDateExtractors {
		if d, ok := extract(text); ok {
			return d, true
		}
	}
	return extractedDate{}, false
}

// extractBirthDate pulls a complete birth date from biographical text.
func extractBirthDate(text string) (entities.CalendarDate, bool) {
	if m := reBornParenMDY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reBornParenDMY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return d, true
		}
	}
	if m := reBornProse.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reBornProseDF.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return d, true
		}
	}
	if m := reLifeStartMDY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reLifeStartDMY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return d, true
		}
	}
	return entities.CalendarDate{}, false
}

// extractDeathDate pulls a complete death date from biographical text.
func extractDeathDate(text string) (entities.CalendarDate, bool) {
	if m := reDiedProse.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reDiedProseDF.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return d, true
		}
	}
	if m := reLifeEndMDY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	if m := reLifeEndDMY.FindStringSubmatch(text); m != nil {
		if d, ok := buildDate(m[2], m[1], m[3]); ok {
			return d, true
		}
	}
	return entities.CalendarDate{}, false
}
