package calc

import (
	"fmt"
	"math"
	"sort"
)

// Summary holds descriptive statistics over a literal number list.
// StdDev is the sample standard deviation and is zero when fewer than
// two values are present.
type Summary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev,omitempty"`
}

// Summarize computes descriptive statistics for the given values.
func Summarize(values []float64) (*Summary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty list")
	}

	s := &Summary{Count: len(values), Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = s.Sum / float64(len(values))
	s.Median = Median(values)
	if len(values) >= 2 {
		s.StdDev = StdDev(values)
	}
	return s, nil
}

// Mean returns the arithmetic mean. It panics on an empty slice;
// callers validate first.
func Mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, averaging the two central values
// for even-length input. The input slice is not modified.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StdDev returns the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// GCD returns the greatest common divisor of two integers.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of two integers, or zero if
// either input is zero.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}
