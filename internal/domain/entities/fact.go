// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
)

// Year bounds for plausible historical dates. Dates outside this span are
// treated as extraction noise, not history.
const (
	MinYear = 1
	MaxYear = 2100
)

// CalendarDate is a complete Gregorian date. Month is 0-based (0 = January,
// 11 = December), matching the wire format of cached facts.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// monthNames indexed by the 0-based Month field.
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Validate checks that the date is a real Gregorian date within the
// plausible year span.
func (d CalendarDate) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrMalformedDate, d.Year, MinYear, MaxYear)
	}
	if d.Month < 0 || d.Month > 11 {
		return fmt.Errorf("%w: month %d", ErrMalformedDate, d.Month)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: day %d of %s %d", ErrMalformedDate, d.Day, monthNames[d.Month], d.Year)
	}
	return nil
}

// String renders the date as "June 6, 1944".
func (d CalendarDate) String() string {
	month := "?"
	if d.Month >= 0 && d.Month <= 11 {
		month = monthNames[d.Month]
	}
	return fmt.Sprintf("%s %d, %d", month, d.Day, d.Year)
}

// DaysInMonth returns the number of days in the given 0-based month.
func DaysInMonth(year, month int) int {
	switch month {
	case 3, 5, 8, 10: // April, June, September, November
		return 30
	case 1: // February
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// isLeapYear applies the Gregorian leap rule.
func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// Fact is a validated, dated historical occurrence. Immutable once
// constructed.
type Fact struct {
	Title        string       `json:"title"`
	CalendarDate CalendarDate `json:"calendar_date"`
	SourceURL    string       `json:"source_url,omitempty"`
	Summary      string       `json:"summary,omitempty"`
}

// NewFact constructs a Fact, validating the date.
func NewFact(title string, date CalendarDate, sourceURL, summary string) (Fact, error) {
	if strings.TrimSpace(title) == "" {
		return Fact{}, fmt.Errorf("%w: fact title is required", ErrPrecondition)
	}
	if err := date.Validate(); err != nil {
		return Fact{}, err
	}
	return Fact{
		Title:        title,
		CalendarDate: date,
		SourceURL:    sourceURL,
		Summary:      summary,
	}, nil
}

// Year is a shorthand for the fact's calendar year.
func (f Fact) Year() int {
	return f.CalendarDate.Year
}

// TitleEquals compares fact titles case-insensitively.
func (f Fact) TitleEquals(title string) bool {
	return strings.EqualFold(f.Title, title)
}
