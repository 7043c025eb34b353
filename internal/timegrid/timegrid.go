// Package timegrid converts between calendar dates and the integer day
// grid the layout engine works in. Day index zero is the Monday of the
// anchor date's week; indices may be negative for dates before the
// anchor. The visible grid spans a fixed working horizon per anchor.
package timegrid

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// MaxGridDay is the last day index the visible grid supports.
const MaxGridDay = 371

// ParseDate parses a YYYY-MM-DD string. The second return is false when
// the input is empty or malformed.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a date as YYYY-MM-DD. The zero time renders as the
// empty string, matching the persisted representation of "no date".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Truncate drops the time-of-day component, keeping the calendar date
// in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek rounds a date down to the Monday of its week (ISO week
// start) at midnight UTC.
func StartOfWeek(t time.Time) time.Time {
	t = Truncate(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

// DayIndex returns the whole-day count from anchorMonday to date.
// Negative values are valid for dates before the anchor.
func DayIndex(anchorMonday, date time.Time) int {
	a := Truncate(anchorMonday)
	d := Truncate(date)
	return int(d.Unix()-a.Unix()) / 86400
}

// DateFromDayIndex is the inverse of DayIndex.
func DateFromDayIndex(anchorMonday time.Time, n int) time.Time {
	return Truncate(anchorMonday).AddDate(0, 0, n)
}

// ClampGridDay clamps a day index to the supported visible horizon
// [0, MaxGridDay]. Only grid-facing lookups clamp; raw day arithmetic
// stays unclamped.
func ClampGridDay(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxGridDay {
		return MaxGridDay
	}
	return n
}

// WeekIndex returns the zero-based week the date falls in, relative to
// the anchor. Uses floor division so pre-anchor dates land in negative
// weeks rather than week zero.
func WeekIndex(anchorMonday, date time.Time) int {
	return FloorDiv(DayIndex(anchorMonday, date), 7)
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
