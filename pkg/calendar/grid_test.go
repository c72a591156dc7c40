package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ref, now time.Time) []Cell {
	cells := make([]Cell, 0, 42)
	for cell := range MonthGrid(ref, now) {
		cells = append(cells, cell)
	}
	return cells
}

func TestMonthGrid(t *testing.T) {
	now := time.Date(2026, time.August, 14, 15, 30, 0, 0, time.Local)

	testCases := []struct {
		name      string
		ref       time.Time
		wantCells int
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			// 31-day month starting on Saturday: full leading week plus trail.
			name:      "August 2026",
			ref:       time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local),
			wantCells: 42,
			wantFirst: time.Date(2026, time.July, 26, 0, 0, 0, 0, time.Local),
			wantLast:  time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local),
		},
		{
			// Starts on Sunday and ends on Saturday: no lead or trail days.
			name:      "February 2026",
			ref:       time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local),
			wantCells: 28,
			wantFirst: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local),
			wantLast:  time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "June 2026",
			ref:       time.Date(2026, time.June, 30, 0, 0, 0, 0, time.Local),
			wantCells: 35,
			wantFirst: time.Date(2026, time.May, 31, 0, 0, 0, 0, time.Local),
			wantLast:  time.Date(2026, time.July, 4, 0, 0, 0, 0, time.Local),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells := collect(tc.ref, now)

			require.Len(t, cells, tc.wantCells)
			assert.Zero(t, len(cells)%7, "grid rows must be complete 7-cell weeks")
			assert.Equal(t, tc.wantFirst, cells[0].Date)
			assert.Equal(t, tc.wantLast, cells[len(cells)-1].Date)
			assert.Equal(t, time.Sunday, cells[0].Date.Weekday())
			assert.Equal(t, time.Saturday, cells[len(cells)-1].Date.Weekday())

			// Consecutive days, no gaps.
			for i := 1; i < len(cells); i++ {
				assert.Equal(t, cells[i-1].Date.AddDate(0, 0, 1), cells[i].Date)
			}
		})
	}
}

func TestMonthGrid_inCurrentMonthFlags(t *testing.T) {
	now := time.Date(2026, time.August, 14, 0, 0, 0, 0, time.Local)
	cells := collect(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local), now)

	for _, cell := range cells {
		assert.Equal(t, cell.Date.Month() == time.August, cell.InCurrentMonth, "cell %v", cell.Date)
	}
}

func TestMonthGrid_todayMarking(t *testing.T) {
	now := time.Date(2026, time.August, 14, 23, 15, 0, 0, time.Local)
	cells := collect(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local), now)

	var todays []time.Time
	for _, cell := range cells {
		if cell.IsToday {
			todays = append(todays, cell.Date)
		}
	}
	require.Len(t, todays, 1)
	assert.Equal(t, time.Date(2026, time.August, 14, 0, 0, 0, 0, time.Local), todays[0])

	// A grid for another month never marks today.
	for _, cell := range collect(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local), now) {
		assert.False(t, cell.IsToday)
	}
}

func TestMonthGrid_restartable(t *testing.T) {
	now := time.Date(2026, time.August, 14, 0, 0, 0, 0, time.Local)
	ref := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local)

	seq := MonthGrid(ref, now)

	first := make([]Cell, 0, 42)
	for cell := range seq {
		first = append(first, cell)
	}
	second := make([]Cell, 0, 42)
	for cell := range seq {
		second = append(second, cell)
	}

	assert.Equal(t, first, second)
}
