// Package dateutil provides calendar arithmetic for the date
// command: flexible parsing, date differences, span addition with
// month-length clamping, age, workday counting, and cron schedule
// previews.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted by Parse, tried in order.
var layouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"2006.01.02",
	"02-01-2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Parse interprets a date string in any supported layout.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (try 2006-01-02)", s)
}

// Diff is the difference between two dates broken into calendar
// components plus the absolute day count.
type Diff struct {
	Years     int
	Months    int
	Days      int
	TotalDays int
}

func (d Diff) String() string {
	var parts []string
	if d.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d year(s)", d.Years))
	}
	if d.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d month(s)", d.Months))
	}
	if d.Days > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s)", d.Days))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, " ")
}

// Between computes the calendar difference between two dates; order
// does not matter.
func Between(a, b time.Time) Diff {
	if a.After(b) {
		a, b = b, a
	}

	totalDays := int(b.Sub(a).Hours() / 24)

	// Advance a by whole months (with end-of-month clamping) as far
	// as possible, then count the leftover days. This keeps the day
	// component non-negative even for dates like Jan 31 vs Mar 1.
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	anchor := AddSpan(a, Span{Months: months})
	if anchor.After(b) {
		months--
		anchor = AddSpan(a, Span{Months: months})
	}
	days := int(b.Sub(anchor).Hours() / 24)

	return Diff{Years: months / 12, Months: months % 12, Days: days, TotalDays: totalDays}
}

// Age returns completed years between birth and reference.
func Age(birth, reference time.Time) int {
	age := reference.Year() - birth.Year()
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}
	return age
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// fixed-date public holidays, keyed by month and day.
var holidays = map[[2]int]string{
	{1, 1}:   "New Year's Day",
	{3, 1}:   "Independence Movement Day",
	{5, 5}:   "Children's Day",
	{6, 6}:   "Memorial Day",
	{8, 15}:  "Liberation Day",
	{10, 3}:  "National Foundation Day",
	{10, 9}:  "Hangul Day",
	{12, 25}: "Christmas Day",
}

// IsHoliday reports whether the date is a fixed-date public holiday
// and returns its name. Lunar-calendar holidays are not tracked.
func IsHoliday(t time.Time) (bool, string) {
	name, ok := holidays[[2]int{int(t.Month()), t.Day()}]
	return ok, name
}

// Workdays counts days in [start, end] that are neither weekend days
// nor fixed-date holidays; order does not matter.
func Workdays(start, end time.Time) int {
	if start.After(end) {
		start, end = end, start
	}

	start = truncateDay(start)
	end = truncateDay(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			continue
		}
		if holiday, _ := IsHoliday(d); holiday {
			continue
		}
		count++
	}
	return count
}

// WeekNumber returns the ISO 8601 week number.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// Quarter returns the calendar quarter, 1 through 4.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first and last day of t's month, at t's
// clock time.
func MonthBounds(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last = time.Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	return first, last
}

// RelativeString renders t relative to reference in coarse human
// units ("3 day(s) ago", "in 2 hour(s)", "just now", "soon").
func RelativeString(t, reference time.Time) string {
	diff := t.Sub(reference)
	past := diff < 0
	if past {
		diff = -diff
	}

	if diff < time.Minute {
		if past {
			return "just now"
		}
		return "soon"
	}

	var amount int
	var unit string
	switch {
	case diff < time.Hour:
		amount, unit = int(diff.Minutes()), "minute(s)"
	case diff < 24*time.Hour:
		amount, unit = int(diff.Hours()), "hour(s)"
	case diff < 7*24*time.Hour:
		amount, unit = int(diff.Hours()/24), "day(s)"
	case diff < 28*24*time.Hour:
		amount, unit = int(diff.Hours()/24/7), "week(s)"
	case diff < 365*24*time.Hour:
		amount, unit = int(diff.Hours()/24/30), "month(s)"
	default:
		amount, unit = int(diff.Hours()/24/365), "year(s)"
	}

	if past {
		return fmt.Sprintf("%d %s ago", amount, unit)
	}
	return fmt.Sprintf("in %d %s", amount, unit)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
