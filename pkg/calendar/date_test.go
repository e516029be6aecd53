package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Key(t *testing.T) {
	assert.Equal(t, DateKey("1_1_2024"), Date{Year: 2024, Month: time.January, Day: 1}.Key())
	assert.Equal(t, DateKey("31_12_1999"), Date{Year: 1999, Month: time.December, Day: 31}.Key())
}

func TestParseDateKey_RoundTrip(t *testing.T) {
	start := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	seen := map[DateKey]bool{}
	for i := 0; i < 800; i++ {
		date := DateOf(start.AddDate(0, 0, i))
		key := date.Key()

		parsed, err := ParseDateKey(key)

		require.NoError(t, err)
		assert.Equal(t, date, parsed)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestParseDateKey_Invalid(t *testing.T) {
	for _, key := range []DateKey{"", "1_1", "a_1_2024", "1_1_2024_1"} {
		_, err := ParseDateKey(key)
		assert.ErrorIs(t, err, ErrInvalidDateKey)
	}
}

func TestNewDate_RollsOver(t *testing.T) {
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 2}, NewDate(2024, time.February, 31))
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 1}, NewDate(2024, 13, 1))
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2024, 0, 2024, 0},
		{2024, 11, 2024, 11},
		{2024, -1, 2023, 11},
		{2024, 12, 2025, 0},
		{2024, 25, 2026, 1},
		{2024, -13, 2022, 11},
		{2024, -24, 2022, 0},
		{2024, 1_200_000, 102_024, 0},
		{2024, -1_200_001, -97_977, 11},
	}
	for _, tc := range testCases {
		year, month := Normalize(tc.year, tc.month)
		assert.Equal(t, tc.wantYear, year)
		assert.Equal(t, tc.wantMonth, month)
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2024, 0))
	assert.Equal(t, 29, DaysIn(2024, 1))
	assert.Equal(t, 28, DaysIn(2023, 1))
	assert.Equal(t, 30, DaysIn(2024, 3))
	assert.Equal(t, 31, DaysIn(2024, 12))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(0))
	assert.Equal(t, "December", MonthName(11))
	assert.Equal(t, "December", MonthName(-1))
}
