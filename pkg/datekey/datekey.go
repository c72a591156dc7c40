// Package datekey implements the canonical DD-MM-YYYY key identifying a
// calendar day. The format is shared with previously stored records and the
// reminder webhook payload, so it must not drift.
package datekey

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical wall-clock day format.
const Layout = "02-01-2006"

var ErrInvalidKey = fmt.Errorf("invalid date key")

// Components are the numeric parts of a date key. Filtering and ordering work
// on components directly; reconstructing a time.Time for comparison would
// reintroduce the timezone drift the key exists to avoid.
type Components struct {
	Day   int
	Month int
	Year  int
}

// Encode formats the wall-clock day of t as a date key. The time-of-day is
// dropped first, so two instants on the same local day always produce the
// same key.
func Encode(t time.Time) string {
	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return normalized.Format(Layout)
}

// Decode splits a date key into its numeric components. It enforces the exact
// two-two-four digit shape; it does not check calendar validity beyond basic
// ranges, matching what stored keys can contain.
func Decode(key string) (Components, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return Components{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	day, dayOk := parseDigits(parts[0])
	month, monthOk := parseDigits(parts[1])
	year, yearOk := parseDigits(parts[2])
	if !dayOk || !monthOk || !yearOk {
		return Components{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return Components{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return Components{Day: day, Month: month, Year: year}, nil
}

// parseDigits parses a component of ASCII digits only. strconv.Atoi would also
// accept a leading sign, letting keys like "+1-03-2024" slip past the shape
// check.
func parseDigits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// MonthKey formats the month of t as MM-YYYY, the grouping key for
// month-scoped queries.
func MonthKey(t time.Time) string {
	return t.Format("01-2006")
}

// MonthKey returns the MM-YYYY grouping key of the components.
func (c Components) MonthKey() string {
	return fmt.Sprintf("%02d-%04d", c.Month, c.Year)
}

// Compare orders two days by true calendar order: year, then month, then day.
// Lexicographic comparison of raw keys would order day strings before months
// and is deliberately not offered.
func (c Components) Compare(other Components) int {
	if c.Year != other.Year {
		return c.Year - other.Year
	}
	if c.Month != other.Month {
		return c.Month - other.Month
	}
	return c.Day - other.Day
}
