// Package units converts values between measurement units.
//
// Linear categories (length, weight, data, time, area) convert
// through a base unit with a fixed factor table. Temperature is the
// one non-linear category and uses dedicated formulas. Tables are
// immutable after process start.
package units

import (
	"fmt"
	"sort"
	"strings"
)

// Category identifies a family of convertible units.
type Category string

const (
	CategoryLength      Category = "length"
	CategoryWeight      Category = "weight"
	CategoryData        Category = "data"
	CategoryTime        Category = "time"
	CategoryArea        Category = "area"
	CategoryTemperature Category = "temperature"
)

// UnknownUnitError reports a unit symbol absent from a category's
// table, together with the symbols that are supported.
type UnknownUnitError struct {
	Category  Category
	Unit      string
	Supported []string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown %s unit %q (supported: %s)",
		e.Category, e.Unit, strings.Join(e.Supported, ", "))
}

// factor tables express each unit as a multiple of the category base
// (meters, grams, bytes, seconds, square meters).
var factorTables = map[Category]map[string]float64{
	CategoryLength: {
		"mm": 0.001, "cm": 0.01, "m": 1, "km": 1000,
		"in": 0.0254, "ft": 0.3048, "yd": 0.9144, "mi": 1609.344,
	},
	CategoryWeight: {
		"mg": 0.001, "g": 1, "kg": 1000, "ton": 1e6,
		"oz": 28.3495, "lb": 453.592,
	},
	CategoryData: {
		"b": 1, "kb": 1024, "mb": 1024 * 1024, "gb": 1024 * 1024 * 1024,
		"tb": 1024 * 1024 * 1024 * 1024,
	},
	CategoryTime: {
		"ms": 0.001, "s": 1, "min": 60, "h": 3600,
		"day": 86400, "week": 604800, "year": 31536000,
	},
	CategoryArea: {
		"mm2": 1e-6, "cm2": 1e-4, "m2": 1, "km2": 1e6,
		"acre": 4046.86, "ha": 10000,
	},
}

// Categories returns the linear categories plus temperature, sorted.
func Categories() []Category {
	cats := make([]Category, 0, len(factorTables)+1)
	for c := range factorTables {
		cats = append(cats, c)
	}
	cats = append(cats, CategoryTemperature)
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Units returns the sorted unit symbols for a category.
func Units(category Category) []string {
	if category == CategoryTemperature {
		return []string{"c", "f", "k"}
	}
	table, ok := factorTables[category]
	if !ok {
		return nil
	}
	units := make([]string, 0, len(table))
	for u := range table {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Convert converts value from one unit to another within a category.
// Unit symbols are case-insensitive.
func Convert(category Category, value float64, from, to string) (float64, error) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	if category == CategoryTemperature {
		return convertTemperature(value, from, to)
	}

	table, ok := factorTables[category]
	if !ok {
		return 0, fmt.Errorf("unknown unit category %q", category)
	}

	fromFactor, ok := table[from]
	if !ok {
		return 0, &UnknownUnitError{Category: category, Unit: from, Supported: Units(category)}
	}
	toFactor, ok := table[to]
	if !ok {
		return 0, &UnknownUnitError{Category: category, Unit: to, Supported: Units(category)}
	}

	return value * fromFactor / toFactor, nil
}

// convertTemperature converts via Celsius.
func convertTemperature(value float64, from, to string) (float64, error) {
	var celsius float64
	switch from {
	case "c":
		celsius = value
	case "f":
		celsius = (value - 32) * 5 / 9
	case "k":
		celsius = value - 273.15
	default:
		return 0, &UnknownUnitError{Category: CategoryTemperature, Unit: from, Supported: Units(CategoryTemperature)}
	}

	switch to {
	case "c":
		return celsius, nil
	case "f":
		return celsius*9/5 + 32, nil
	case "k":
		return celsius + 273.15, nil
	default:
		return 0, &UnknownUnitError{Category: CategoryTemperature, Unit: to, Supported: Units(CategoryTemperature)}
	}
}
