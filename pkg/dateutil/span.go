package dateutil

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Span is a calendar-aware duration: years and months shift the
// calendar position (clamping the day to the target month's length),
// the remaining fields are exact offsets.
type Span struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports an all-zero span.
func (s Span) IsZero() bool {
	return s == Span{}
}

// ParseSpan reads a compact span like "30d", "2w", "1y6m" or
// "1d12h30min". Units: y, m (months), w, d, h, min, s.
func ParseSpan(input string) (Span, error) {
	var span Span
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return span, fmt.Errorf("empty duration")
	}

	i := 0
	seen := false
	for i < len(s) {
		if unicode.IsSpace(rune(s[i])) {
			i++
			continue
		}

		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return Span{}, fmt.Errorf("invalid duration %q: expected a number at %q", input, s[start:])
		}
		value := 0
		for _, c := range s[start:i] {
			value = value*10 + int(c-'0')
		}

		unitStart := i
		for i < len(s) && unicode.IsLetter(rune(s[i])) {
			i++
		}
		unit := s[unitStart:i]

		switch unit {
		case "y":
			span.Years += value
		case "m":
			span.Months += value
		case "w":
			span.Days += 7 * value
		case "d":
			span.Days += value
		case "h":
			span.Hours += value
		case "min":
			span.Minutes += value
		case "s":
			span.Seconds += value
		default:
			return Span{}, fmt.Errorf("invalid duration %q: unknown unit %q", input, unit)
		}
		seen = true
	}

	if !seen {
		return Span{}, fmt.Errorf("invalid duration %q", input)
	}
	return span, nil
}

// AddSpan applies a span to a time. Year and month arithmetic clamps
// the day-of-month, so Jan 31 + 1m is Feb 28 (or 29), not Mar 2 or 3.
func AddSpan(t time.Time, span Span) time.Time {
	year := t.Year() + span.Years
	month := int(t.Month()) + span.Months

	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	day := t.Day()
	if max := DaysInMonth(year, time.Month(month)); day > max {
		day = max
	}

	shifted := time.Date(year, time.Month(month), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	return shifted.
		AddDate(0, 0, span.Days).
		Add(time.Duration(span.Hours)*time.Hour +
			time.Duration(span.Minutes)*time.Minute +
			time.Duration(span.Seconds)*time.Second)
}
