package csvstats

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ColumnType classifies a column by the values it holds. A column is
// numeric when more than 80% of its values parse as numbers.
type ColumnType string

const (
	TypeNumeric ColumnType = "numeric"
	TypeString  ColumnType = "string"
)

// numericThreshold is the fraction of parseable values required to
// treat a column as numeric.
const numericThreshold = 0.8

// UnknownColumnError reports a reference to a column the dataset does
// not contain.
type UnknownColumnError struct {
	Column  string
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q (have: %s)", e.Column, strings.Join(e.Columns, ", "))
}

// NumericStats holds summary statistics for a numeric column.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Sum    float64 `json:"sum"`
}

// ValueCount pairs a cell value with its number of occurrences.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnStats describes one column. Numeric is nil for string
// columns; TopValues is empty for numeric ones.
type ColumnStats struct {
	Name      string        `json:"name"`
	Type      ColumnType    `json:"type"`
	Count     int           `json:"count"`
	Missing   int           `json:"missing"`
	Unique    int           `json:"unique"`
	Numeric   *NumericStats `json:"numeric,omitempty"`
	TopValues []ValueCount  `json:"top_values,omitempty"`
}

// Summary describes a whole dataset.
type Summary struct {
	Filename    string                 `json:"filename"`
	Rows        int                    `json:"rows"`
	Columns     int                    `json:"columns"`
	ColumnNames []string               `json:"column_names"`
	Stats       map[string]ColumnStats `json:"stats"`
	SampleRows  []map[string]string    `json:"sample_rows"`
}

// Dataset is an in-memory CSV table. Rows are keyed by header name,
// mirroring how the file reads: all cells stay strings and numeric
// interpretation happens per operation.
type Dataset struct {
	Path      string
	Columns   []string
	Rows      []map[string]string
	Delimiter rune
}

// Load reads a CSV file into memory. The field delimiter is sniffed
// from the first 4 KiB of the file: whichever of comma, tab,
// semicolon, or pipe occurs most often wins, with comma as the tie
// default.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	delim := sniffDelimiter(raw)

	r := csv.NewReader(strings.NewReader(string(raw)))
	r.Comma = delim
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv %s: empty file", path)
	}

	ds := &Dataset{
		Path:      path,
		Columns:   records[0],
		Delimiter: delim,
	}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func sniffDelimiter(raw []byte) rune {
	sample := raw
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	s := string(sample)

	best := ','
	bestCount := strings.Count(s, ",")
	for _, delim := range []rune{'\t', ';', '|'} {
		if n := strings.Count(s, string(delim)); n > bestCount {
			best, bestCount = delim, n
		}
	}
	return best
}

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

func (d *Dataset) unknownColumn(name string) error {
	return &UnknownColumnError{Column: name, Columns: d.Columns}
}

// Head returns the first n rows, or all rows when fewer exist.
func (d *Dataset) Head(n int) []map[string]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Tail returns the last n rows, or all rows when fewer exist.
func (d *Dataset) Tail(n int) []map[string]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[len(d.Rows)-n:]
}

// parseNumber converts a cell to a float. Thousands separators are
// tolerated ("1,234.5" parses as 1234.5). The second return is false
// for blanks and unparseable cells.
func parseNumber(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numericColumn collects the parseable values of a column in row order.
func (d *Dataset) numericColumn(name string) []float64 {
	var values []float64
	for _, row := range d.Rows {
		if v, ok := parseNumber(row[name]); ok {
			values = append(values, v)
		}
	}
	return values
}

// ColumnStats computes summary statistics for one column.
func (d *Dataset) ColumnStats(name string) (ColumnStats, error) {
	if !d.HasColumn(name) {
		return ColumnStats{}, d.unknownColumn(name)
	}

	missing := 0
	uniq := make(map[string]struct{})
	for _, row := range d.Rows {
		v := row[name]
		if strings.TrimSpace(v) == "" {
			missing++
			continue
		}
		uniq[v] = struct{}{}
	}

	numeric := d.numericColumn(name)
	ratio := 0.0
	if len(d.Rows) > 0 {
		ratio = float64(len(numeric)) / float64(len(d.Rows))
	}

	stats := ColumnStats{
		Name:    name,
		Type:    TypeString,
		Count:   len(d.Rows),
		Missing: missing,
		Unique:  len(uniq),
	}

	if ratio > numericThreshold && len(numeric) > 0 {
		stats.Type = TypeNumeric
		stats.Numeric = summarize(numeric)
	} else {
		counts, err := d.ValueCounts(name)
		if err != nil {
			return ColumnStats{}, err
		}
		var top []ValueCount
		for _, vc := range counts {
			if strings.TrimSpace(vc.Value) == "" {
				continue
			}
			top = append(top, vc)
			if len(top) == 5 {
				break
			}
		}
		stats.TopValues = top
	}
	return stats, nil
}

func summarize(values []float64) *NumericStats {
	n := len(values)
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	mid := n / 2
	median := sorted[mid]
	if n%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	stddev := 0.0
	if n > 1 {
		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		stddev = math.Sqrt(variance / float64(n-1))
	}

	return &NumericStats{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median,
		StdDev: stddev,
		Sum:    sum,
	}
}

// Summarize computes statistics for every column.
func (d *Dataset) Summarize() (Summary, error) {
	stats := make(map[string]ColumnStats, len(d.Columns))
	for _, col := range d.Columns {
		cs, err := d.ColumnStats(col)
		if err != nil {
			return Summary{}, err
		}
		stats[col] = cs
	}

	sample := d.Head(5)
	return Summary{
		Filename:    filepath.Base(d.Path),
		Rows:        len(d.Rows),
		Columns:     len(d.Columns),
		ColumnNames: append([]string(nil), d.Columns...),
		Stats:       stats,
		SampleRows:  sample,
	}, nil
}

// WriteCSV saves rows to a file using the dataset's column order and
// delimiter. A nil rows slice writes the whole dataset.
func (d *Dataset) WriteCSV(path string, rows []map[string]string) error {
	if rows == nil {
		rows = d.Rows
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = d.Delimiter
	if err := w.Write(d.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(d.Columns))
	for _, row := range rows {
		for i, col := range d.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
