// Package calendar generates the month grid backing the calendar view:
// complete Sunday-aligned weeks covering the reference month, including the
// lead and trail days borrowed from adjacent months.
package calendar

import (
	"iter"
	"time"
)

// Cell is one day slot of the rendered grid. Cells are ephemeral and
// regenerated on every request.
type Cell struct {
	Date           time.Time
	InCurrentMonth bool
	IsToday        bool
}

// MonthGrid yields the grid cells for the month containing ref, from the
// Sunday on or before the 1st through the Saturday on or after the last day.
// The sequence is pure for a fixed now and always a multiple of seven cells.
func MonthGrid(ref time.Time, now time.Time) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)

		start := first.AddDate(0, 0, -int(first.Weekday()))
		end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			cell := Cell{
				Date:           day,
				InCurrentMonth: day.Month() == first.Month() && day.Year() == first.Year(),
				IsToday:        sameDay(day, now),
			}
			if !yield(cell) {
				return
			}
		}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
