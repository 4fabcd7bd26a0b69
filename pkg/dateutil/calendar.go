package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthCalendar renders a month as a text calendar with Monday-first
// weeks, e.g.
//
//	    January 2024
//	Mo Tu We Th Fr Sa Su
//	 1  2  3  4  5  6  7
//	...
func MonthCalendar(year int, month time.Month) (string, error) {
	if month < time.January || month > time.December {
		return "", fmt.Errorf("month must be 1..12, got %d", int(month))
	}
	if year < 1 {
		return "", fmt.Errorf("year must be positive, got %d", year)
	}

	var sb strings.Builder

	title := fmt.Sprintf("%s %d", month, year)
	pad := (20 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString("Mo Tu We Th Fr Sa Su\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday-first column index, 0..6.
	column := (int(first.Weekday()) + 6) % 7

	week := make([]string, 0, 7)
	for i := 0; i < column; i++ {
		week = append(week, "  ")
	}
	for day := 1; day <= DaysInMonth(year, month); day++ {
		week = append(week, fmt.Sprintf("%2d", day))
		if len(week) == 7 {
			sb.WriteString(strings.Join(week, " ") + "\n")
			week = week[:0]
		}
	}
	if len(week) > 0 {
		sb.WriteString(strings.TrimRight(strings.Join(week, " "), " ") + "\n")
	}

	return sb.String(), nil
}
