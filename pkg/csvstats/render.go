package csvstats

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders a plain-text overview of the dataset, one table
// for numeric columns and a block per string column.
func (d *Dataset) Describe() (string, error) {
	summary, err := d.Summarize()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", summary.Filename)
	fmt.Fprintf(&b, "Rows: %d\n", summary.Rows)
	fmt.Fprintf(&b, "Columns: %d\n", summary.Columns)

	var numeric, text []ColumnStats
	for _, name := range summary.ColumnNames {
		cs := summary.Stats[name]
		if cs.Type == TypeNumeric {
			numeric = append(numeric, cs)
		} else {
			text = append(text, cs)
		}
	}

	if len(numeric) > 0 {
		b.WriteString("\nNumeric columns:\n")
		b.WriteString(strings.Repeat("-", 80) + "\n")
		fmt.Fprintf(&b, "%-15s %10s %12s %12s %12s %12s %12s\n",
			"", "count", "mean", "std", "min", "median", "max")
		b.WriteString(strings.Repeat("-", 80) + "\n")
		for _, cs := range numeric {
			name := cs.Name
			if len(name) > 15 {
				name = name[:15]
			}
			fmt.Fprintf(&b, "%-15s %10d %12.2f %12.2f %12.2f %12.2f %12.2f\n",
				name, cs.Count-cs.Missing,
				cs.Numeric.Mean, cs.Numeric.StdDev,
				cs.Numeric.Min, cs.Numeric.Median, cs.Numeric.Max)
		}
	}

	if len(text) > 0 {
		b.WriteString("\nString columns:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, cs := range text {
			fmt.Fprintf(&b, "\n%s:\n", cs.Name)
			fmt.Fprintf(&b, "  valid: %d / missing: %d\n", cs.Count-cs.Missing, cs.Missing)
			fmt.Fprintf(&b, "  unique: %d\n", cs.Unique)
			if len(cs.TopValues) > 0 {
				parts := make([]string, 0, 3)
				for _, vc := range cs.TopValues {
					parts = append(parts, fmt.Sprintf("%s(%d)", vc.Value, vc.Count))
					if len(parts) == 3 {
						break
					}
				}
				fmt.Fprintf(&b, "  top: %s\n", strings.Join(parts, ", "))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// Histogram renders a text histogram of a numeric column's values.
func (d *Dataset) Histogram(column string, bins, width int) (string, error) {
	if !d.HasColumn(column) {
		return "", d.unknownColumn(column)
	}
	values := d.numericColumn(column)
	if len(values) == 0 {
		return "", fmt.Errorf("histogram %s: no numeric values", column)
	}
	return renderHistogram(values, bins, width), nil
}

func renderHistogram(values []float64, bins, width int) string {
	if bins < 1 {
		bins = 10
	}
	if width < 1 {
		width = 50
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return fmt.Sprintf("all values equal: %g", min)
	}

	binWidth := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / binWidth)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var lines []string
	for i, count := range counts {
		start := min + float64(i)*binWidth
		end := start + binWidth
		bar := strings.Repeat("#", count*width/maxCount)
		lines = append(lines, fmt.Sprintf("%10.2f - %10.2f | %s (%d)", start, end, bar, count))
	}
	return strings.Join(lines, "\n")
}

// RenderTable formats rows as an aligned text table. Cell contents
// are truncated to maxColWidth runes; column widths come from the
// header and the first 50 rows.
func RenderTable(rows []map[string]string, columns []string, maxColWidth int) string {
	if len(rows) == 0 {
		return "(no rows)"
	}
	if maxColWidth < 1 {
		maxColWidth = 20
	}

	widths := make(map[string]int, len(columns))
	for _, col := range columns {
		w := len(col)
		probe := rows
		if len(probe) > 50 {
			probe = probe[:50]
		}
		for _, row := range probe {
			if n := len(row[col]); n > w {
				w = n
			}
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		widths[col] = w
	}

	clip := func(s string, w int) string {
		if len(s) > w {
			s = s[:w]
		}
		return s + strings.Repeat(" ", w-len(s))
	}

	var b strings.Builder
	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, col := range columns {
		header[i] = clip(col, widths[col])
		rule[i] = strings.Repeat("-", widths[col])
	}
	b.WriteString(strings.Join(header, " | ") + "\n")
	b.WriteString(strings.Join(rule, "-+-") + "\n")

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = clip(row[col], widths[col])
		}
		b.WriteString(strings.Join(cells, " | ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// TopGroups orders group keys by descending count for display, ties
// broken by key.
func TopGroups(groups map[string]GroupAgg) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if groups[keys[i]].Count != groups[keys[j]].Count {
			return groups[keys[i]].Count > groups[keys[j]].Count
		}
		return keys[i] < keys[j]
	})
	return keys
}
