package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "single digit day and month are zero padded",
			date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local),
			want: "05-03-2024",
		},
		{
			name: "two digit day and month",
			date: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local),
			want: "31-12-2024",
		},
		{
			name: "time of day is dropped",
			date: time.Date(2024, time.March, 5, 23, 59, 59, 999, time.Local),
			want: "05-03-2024",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Encode(tc.date))
		})
	}
}

func TestEncode_sameDayDifferentTimes(t *testing.T) {
	morning := time.Date(2025, time.June, 1, 8, 15, 0, 0, time.Local)
	evening := time.Date(2025, time.June, 1, 22, 45, 0, 0, time.Local)

	assert.Equal(t, Encode(morning), Encode(evening))
}

func TestDecode_roundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 29, 12, 0, 0, 0, time.Local),
		time.Date(1999, time.December, 31, 23, 59, 0, 0, time.Local),
		time.Date(2030, time.July, 9, 6, 30, 0, 0, time.Local),
	}
	for _, d := range dates {
		c, err := Decode(Encode(d))
		require.NoError(t, err)
		assert.Equal(t, d.Day(), c.Day)
		assert.Equal(t, int(d.Month()), c.Month)
		assert.Equal(t, d.Year(), c.Year)
	}
}

func TestDecode_invalid(t *testing.T) {
	invalid := []string{
		"",
		"5-3-2024",
		"05/03/2024",
		"05-03-24",
		"2024-03-05",
		"32-01-2024",
		"01-13-2024",
		"aa-bb-cccc",
		"05-03-2024-extra",
		// Signed components keep the 2/2/4 shape but are not digits.
		"+1-03-2024",
		"-1-03-2024",
		"01-+3-2024",
		"01-03-+024",
		" 1-03-2024",
	}
	for _, key := range invalid {
		_, err := Decode(key)
		assert.ErrorIsf(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "03-2024", MonthKey(d))

	c, err := Decode("05-03-2024")
	require.NoError(t, err)
	assert.Equal(t, "03-2024", c.MonthKey())
}

func TestComponents_Compare(t *testing.T) {
	a, _ := Decode("21-01-2024")
	b, _ := Decode("01-03-2024")
	c, _ := Decode("05-03-2024")

	// Numeric calendar order, not string order: "01" and "05" sort before
	// "21" lexicographically even though they fall in a later month.
	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Negative(t, a.Compare(c))
	assert.Positive(t, c.Compare(a))
	assert.Zero(t, b.Compare(b))
}
