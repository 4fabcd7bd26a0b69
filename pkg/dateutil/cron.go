package dateutil

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// NextCron returns the next count occurrences of a standard 5-field
// cron expression after the given time.
//
// Common expressions:
//   - "0 3 * * *"    - daily at 3 AM
//   - "*/15 * * * *" - every 15 minutes
//   - "0 0 * * 0"    - Sundays at midnight
func NextCron(expr string, after time.Time, count int) ([]time.Time, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	times := make([]time.Time, 0, count)
	next := after
	for i := 0; i < count; i++ {
		next = schedule.Next(next)
		if next.IsZero() {
			break
		}
		times = append(times, next)
	}
	return times, nil
}
