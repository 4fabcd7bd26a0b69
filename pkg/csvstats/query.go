package csvstats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq       Op = "eq"
	OpNe       Op = "ne"
	OpGt       Op = "gt"
	OpLt       Op = "lt"
	OpGe       Op = "ge"
	OpLe       Op = "le"
	OpContains Op = "contains"
)

// ParseOp validates a filter operator string.
func ParseOp(s string) (Op, error) {
	switch Op(strings.ToLower(s)) {
	case OpEq, OpNe, OpGt, OpLt, OpGe, OpLe, OpContains:
		return Op(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown filter operator %q (want eq, ne, gt, lt, ge, le, or contains)", s)
}

// Filter returns the rows where the named column matches the
// condition. Ordering comparisons apply only to cells that parse as
// numbers; eq matches either textually or numerically, and contains
// is case-insensitive.
func (d *Dataset) Filter(column string, op Op, value string) ([]map[string]string, error) {
	if !d.HasColumn(column) {
		return nil, d.unknownColumn(column)
	}

	want, wantNumeric := parseNumber(value)

	var results []map[string]string
	for _, row := range d.Rows {
		cell := row[column]
		num, isNum := parseNumber(cell)

		match := false
		switch op {
		case OpEq:
			match = cell == value || (isNum && wantNumeric && num == want)
		case OpNe:
			match = cell != value
		case OpGt:
			match = isNum && wantNumeric && num > want
		case OpLt:
			match = isNum && wantNumeric && num < want
		case OpGe:
			match = isNum && wantNumeric && num >= want
		case OpLe:
			match = isNum && wantNumeric && num <= want
		case OpContains:
			match = strings.Contains(strings.ToLower(cell), strings.ToLower(value))
		default:
			return nil, fmt.Errorf("unknown filter operator %q", op)
		}

		if match {
			results = append(results, row)
		}
	}
	return results, nil
}

// GroupAgg holds per-group aggregates. The numeric fields are zero
// when the group has no parseable values in the aggregate column.
type GroupAgg struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum,omitempty"`
	Mean  float64 `json:"mean,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
}

// emptyGroupKey labels rows whose grouping cell is blank.
const emptyGroupKey = "(empty)"

// GroupBy buckets rows by the values of column. When aggColumn is
// non-empty its parseable values are aggregated per group; otherwise
// only counts are produced.
func (d *Dataset) GroupBy(column, aggColumn string) (map[string]GroupAgg, error) {
	if !d.HasColumn(column) {
		return nil, d.unknownColumn(column)
	}
	if aggColumn != "" && !d.HasColumn(aggColumn) {
		return nil, d.unknownColumn(aggColumn)
	}

	groups := make(map[string][]map[string]string)
	for _, row := range d.Rows {
		key := row[column]
		if strings.TrimSpace(key) == "" {
			key = emptyGroupKey
		}
		groups[key] = append(groups[key], row)
	}

	result := make(map[string]GroupAgg, len(groups))
	for key, rows := range groups {
		agg := GroupAgg{Count: len(rows)}
		if aggColumn != "" {
			var values []float64
			for _, row := range rows {
				if v, ok := parseNumber(row[aggColumn]); ok {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				s := summarize(values)
				agg.Sum = s.Sum
				agg.Mean = s.Mean
				agg.Min = s.Min
				agg.Max = s.Max
			}
		}
		result[key] = agg
	}
	return result, nil
}

// Correlation computes the Pearson correlation coefficient between
// two columns over the rows where both cells parse as numbers. It
// fails when fewer than two such rows exist or either column has zero
// variance.
func (d *Dataset) Correlation(col1, col2 string) (float64, error) {
	if !d.HasColumn(col1) {
		return 0, d.unknownColumn(col1)
	}
	if !d.HasColumn(col2) {
		return 0, d.unknownColumn(col2)
	}

	var xs, ys []float64
	for _, row := range d.Rows {
		x, okX := parseNumber(row[col1])
		y, okY := parseNumber(row[col2])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}

	n := len(xs)
	if n < 2 {
		return 0, fmt.Errorf("correlation %s vs %s: need at least 2 numeric pairs, have %d", col1, col2, n)
	}

	meanX, meanY := 0.0, 0.0
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	num, denX, denY := 0.0, 0.0, 0.0
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}
	if denX == 0 || denY == 0 {
		return 0, fmt.Errorf("correlation %s vs %s: a column has zero variance", col1, col2)
	}
	return num / (math.Sqrt(denX) * math.Sqrt(denY)), nil
}

// ValueCounts returns the frequency of every value in a column,
// most frequent first. Ties break by value for stable output.
func (d *Dataset) ValueCounts(column string) ([]ValueCount, error) {
	if !d.HasColumn(column) {
		return nil, d.unknownColumn(column)
	}

	freq := make(map[string]int)
	for _, row := range d.Rows {
		freq[row[column]]++
	}

	counts := make([]ValueCount, 0, len(freq))
	for v, n := range freq {
		counts = append(counts, ValueCount{Value: v, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts, nil
}
