package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateKey is returned by ParseDateKey for malformed keys.
var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey is the canonical day_month_year form of a calendar day, with a
// 1-based month and no zero padding. It partitions the events table and
// forms the argument part of date callback tokens.
type DateKey string

// Date is a calendar day without a time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date the way time.Date does, so out-of-range days and
// months roll over into the neighbouring month or year.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Key formats d as day_month_year.
func (d Date) Key() DateKey {
	return DateKey(fmt.Sprintf("%d_%d_%d", d.Day, int(d.Month), d.Year))
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return string(d.Key())
}

// ParseDateKey is the inverse of Date.Key.
func ParseDateKey(key DateKey) (Date, error) {
	parts := strings.Split(string(key), "_")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
		}
		values[i] = v
	}
	return Date{Year: values[2], Month: time.Month(values[1]), Day: values[0]}, nil
}

// Normalize carries a 0-based month index outside [0,11] into the year.
func Normalize(year, month int) (int, int) {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year, month
}

// DaysIn returns the number of days of a 0-based month.
func DaysIn(year, month int) int {
	year, month = Normalize(year, month)
	// day 0 of the following month is the last day of this one
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthName returns the English name of a 0-based month index.
func MonthName(month int) string {
	_, month = Normalize(0, month)
	return time.Month(month + 1).String()
}

func monthOf(month int) time.Month {
	return time.Month(month + 1)
}
