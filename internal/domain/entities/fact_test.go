package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		date    CalendarDate
		wantErr bool
	}{
		{
			name: "complete valid date",
			date: CalendarDate{Year: 1944, Month: 5, Day: 6},
		},
		{
			name: "first plausible year",
			date: CalendarDate{Year: 1, Month: 0, Day: 1},
		},
		{
			name: "last plausible year",
			date: CalendarDate{Year: 2100, Month: 11, Day: 31},
		},
		{
			name:    "year zero",
			date:    CalendarDate{Year: 0, Month: 0, Day: 1},
			wantErr: true,
		},
		{
			name:    "negative year",
			date:    CalendarDate{Year: -44, Month: 0, Day: 1},
			wantErr: true,
		},
		{
			name:    "year beyond the span",
			date:    CalendarDate{Year: 2101, Month: 0, Day: 1},
			wantErr: true,
		},
		{
			name:    "month too large",
			date:    CalendarDate{Year: 1900, Month: 12, Day: 1},
			wantErr: true,
		},
		{
			name:    "negative month",
			date:    CalendarDate{Year: 1900, Month: -1, Day: 1},
			wantErr: true,
		},
		{
			name:    "day zero",
			date:    CalendarDate{Year: 1900, Month: 0, Day: 0},
			wantErr: true,
		},
		{
			name:    "April 31 does not exist",
			date:    CalendarDate{Year: 1900, Month: 3, Day: 31},
			wantErr: true,
		},
		{
			name: "February 29 in a leap year",
			date: CalendarDate{Year: 2000, Month: 1, Day: 29},
		},
		{
			name:    "February 29 in a century non-leap year",
			date:    CalendarDate{Year: 1900, Month: 1, Day: 29},
			wantErr: true,
		},
		{
			name:    "February 30 never exists",
			date:    CalendarDate{Year: 2024, Month: 1, Day: 30},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedDate))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalendarDate_String(t *testing.T) {
	d := CalendarDate{Year: 1944, Month: 5, Day: 6}
	assert.Equal(t, "June 6, 1944", d.String())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(1900, 0))
	assert.Equal(t, 30, DaysInMonth(1900, 3))
	assert.Equal(t, 30, DaysInMonth(1900, 10))
	assert.Equal(t, 28, DaysInMonth(1900, 1))
	assert.Equal(t, 29, DaysInMonth(2000, 1))
	assert.Equal(t, 29, DaysInMonth(2024, 1))
}

func TestNewFact(t *testing.T) {
	fact, err := NewFact("Battle of Hastings", CalendarDate{Year: 1066, Month: 9, Day: 14}, "https://example.org/hastings", "Norman conquest battle")
	require.NoError(t, err)
	assert.Equal(t, "Battle of Hastings", fact.Title)
	assert.Equal(t, 1066, fact.Year())

	_, err = NewFact("", CalendarDate{Year: 1066, Month: 9, Day: 14}, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrecondition))

	_, err = NewFact("Bad Date", CalendarDate{Year: 1066, Month: 13, Day: 1}, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDate))
}

func TestFact_TitleEquals(t *testing.T) {
	fact := Fact{Title: "Battle of Hastings"}
	assert.True(t, fact.TitleEquals("battle of hastings"))
	assert.True(t, fact.TitleEquals("BATTLE OF HASTINGS"))
	assert.False(t, fact.TitleEquals("Battle of Agincourt"))
}
