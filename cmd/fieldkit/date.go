package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/dateutil"
)

var dateFlags struct {
	diff     string
	add      string
	age      bool
	workdays string
	calendar bool
	cron     string
	count    int
}

var dateCmd = &cobra.Command{
	Use:   "date [date]",
	Short: "Date arithmetic and calendars",
	Long: `Date arithmetic, calendars and cron schedules.

Dates are accepted in common layouts (2026-08-30, 2026/08/30,
30.08.2026, "Aug 30 2026"). Without arguments today's date is
described.

Examples:
  # Describe a date (weekday, week number, quarter, holidays)
  fieldkit date 2026-08-30

  # Difference between two dates
  fieldkit date 2023-01-15 --diff 2024-03-20

  # Add a duration (d, w, m, y; combined like "1y 2m 3d")
  fieldkit date 2026-08-30 --add 3w

  # Age from a birth date
  fieldkit date 1990-05-15 --age

  # Working days between two dates
  fieldkit date 2026-08-01 --workdays 2026-08-31

  # Render a month calendar
  fieldkit date --calendar 2026 8

  # Next occurrences of a cron schedule
  fieldkit date --cron "0 9 * * 1-5" --count 5`,
	RunE: runDate,
}

func init() {
	rootCmd.AddCommand(dateCmd)

	dateCmd.Flags().StringVar(&dateFlags.diff, "diff", "", "second date for a difference")
	dateCmd.Flags().StringVar(&dateFlags.add, "add", "", "duration to add (e.g. 3d, 2w, 1m, 1y)")
	dateCmd.Flags().BoolVar(&dateFlags.age, "age", false, "treat the date as a birth date and print the age")
	dateCmd.Flags().StringVar(&dateFlags.workdays, "workdays", "", "second date for a working-day count")
	dateCmd.Flags().BoolVar(&dateFlags.calendar, "calendar", false, "render a month calendar (args: year month)")
	dateCmd.Flags().StringVar(&dateFlags.cron, "cron", "", "cron expression for next occurrences")
	dateCmd.Flags().IntVar(&dateFlags.count, "count", 5, "number of cron occurrences to show")
}

func runDate(cmd *cobra.Command, args []string) error {
	switch {
	case dateFlags.calendar:
		return runDateCalendar(args)
	case dateFlags.cron != "":
		return runDateCron()
	}

	base := time.Now()
	if len(args) > 1 {
		return cli.NewUsageError("date", "at most one date argument is accepted")
	}
	if len(args) == 1 {
		var err error
		base, err = dateutil.Parse(args[0])
		if err != nil {
			return cli.NewCommandError("date", err)
		}
	}

	switch {
	case dateFlags.diff != "":
		return runDateDiff(base, dateFlags.diff)
	case dateFlags.add != "":
		return runDateAdd(base, dateFlags.add)
	case dateFlags.age:
		fmt.Printf("%d years\n", dateutil.Age(base, time.Now()))
		return nil
	case dateFlags.workdays != "":
		return runDateWorkdays(base, dateFlags.workdays)
	}

	printDateInfo(base)
	return nil
}

func printDateInfo(t time.Time) {
	fmt.Printf("Date:     %s (%s)\n", t.Format(time.DateOnly), t.Weekday())
	fmt.Printf("Week:     %d\n", dateutil.WeekNumber(t))
	fmt.Printf("Quarter:  Q%d\n", dateutil.Quarter(t))
	fmt.Printf("Days in month: %d\n", dateutil.DaysInMonth(t.Year(), t.Month()))
	fmt.Printf("Weekend:  %s\n", yesNo(dateutil.IsWeekend(t)))
	if holiday, name := dateutil.IsHoliday(t); holiday {
		fmt.Printf("Holiday:  %s\n", name)
	}
	fmt.Printf("Relative: %s\n", dateutil.RelativeString(t, time.Now()))
}

func runDateDiff(base time.Time, other string) error {
	second, err := dateutil.Parse(other)
	if err != nil {
		return cli.NewCommandError("date", err)
	}

	diff := dateutil.Between(base, second)
	fmt.Printf("%s\n", diff)
	fmt.Printf("Total days: %d\n", diff.TotalDays)
	return nil
}

func runDateAdd(base time.Time, spec string) error {
	span, err := dateutil.ParseSpan(spec)
	if err != nil {
		return cli.NewCommandError("date", err)
	}

	result := dateutil.AddSpan(base, span)
	fmt.Printf("%s\n", result.Format(time.DateOnly))
	return nil
}

func runDateWorkdays(base time.Time, other string) error {
	second, err := dateutil.Parse(other)
	if err != nil {
		return cli.NewCommandError("date", err)
	}

	days := dateutil.Workdays(base, second)
	fmt.Printf("%d working days\n", days)
	return nil
}

func runDateCalendar(args []string) error {
	if len(args) != 2 {
		return cli.NewUsageError("date", "--calendar requires year and month arguments")
	}

	year, err := strconv.Atoi(args[0])
	if err != nil {
		return cli.NewUsageError("date", "invalid year: %q", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return cli.NewUsageError("date", "invalid month: %q", args[1])
	}

	calendar, err := dateutil.MonthCalendar(year, time.Month(month))
	if err != nil {
		return cli.NewCommandError("date", err)
	}
	fmt.Print(calendar)
	return nil
}

func runDateCron() error {
	occurrences, err := dateutil.NextCron(dateFlags.cron, time.Now(), dateFlags.count)
	if err != nil {
		return cli.NewCommandError("date", err)
	}

	for _, occurrence := range occurrences {
		fmt.Println(occurrence.Format(time.DateTime))
	}
	return nil
}
