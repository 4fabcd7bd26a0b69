// Package functions holds the built-in function and constant tables
// shared by the parser (arity checks) and the evaluator (dispatch).
//
// Both tables are package-level and never mutated after init, so
// concurrent lookups need no synchronization.
package functions

import (
	"fmt"
	"math"
	"strings"
)

// Variadic marks a function that accepts MinArgs or more arguments.
const Variadic = -1

// Function describes one built-in function. Impl receives exactly the
// evaluated arguments; domain errors (negative sqrt, non-positive log)
// are returned as errors with a short reason.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // Variadic for no upper bound
	Impl    func(args []float64) (float64, error)
}

// Arity renders the accepted argument count for diagnostics,
// e.g. "1", "2" or "2+".
func (f *Function) Arity() string {
	if f.MaxArgs == Variadic {
		return fmt.Sprintf("%d+", f.MinArgs)
	}
	return fmt.Sprintf("%d", f.MinArgs)
}

// Accepts reports whether the function can be called with n arguments.
func (f *Function) Accepts(n int) bool {
	if n < f.MinArgs {
		return false
	}
	if f.MaxArgs == Variadic {
		return true
	}
	return n <= f.MaxArgs
}

var table = map[string]*Function{}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func register(name string, minArgs, maxArgs int, impl func(args []float64) (float64, error)) {
	table[name] = &Function{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Impl: impl}
}

func unary(f func(x float64) (float64, error)) func(args []float64) (float64, error) {
	return func(args []float64) (float64, error) {
		return f(args[0])
	}
}

func init() {
	register("sqrt", 1, 1, unary(func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("negative sqrt")
		}
		return math.Sqrt(x), nil
	}))

	// Trigonometric functions take degrees.
	register("sin", 1, 1, unary(func(x float64) (float64, error) {
		return math.Sin(x * math.Pi / 180), nil
	}))
	register("cos", 1, 1, unary(func(x float64) (float64, error) {
		return math.Cos(x * math.Pi / 180), nil
	}))
	register("tan", 1, 1, unary(func(x float64) (float64, error) {
		return math.Tan(x * math.Pi / 180), nil
	}))

	register("log", 1, 1, unary(func(x float64) (float64, error) {
		if x <= 0 {
			return 0, fmt.Errorf("non-positive log")
		}
		return math.Log10(x), nil
	}))
	register("ln", 1, 1, unary(func(x float64) (float64, error) {
		if x <= 0 {
			return 0, fmt.Errorf("non-positive log")
		}
		return math.Log(x), nil
	}))
	register("exp", 1, 1, unary(func(x float64) (float64, error) {
		return math.Exp(x), nil
	}))

	register("abs", 1, 1, unary(func(x float64) (float64, error) {
		return math.Abs(x), nil
	}))
	register("floor", 1, 1, unary(func(x float64) (float64, error) {
		return math.Floor(x), nil
	}))
	register("ceil", 1, 1, unary(func(x float64) (float64, error) {
		return math.Ceil(x), nil
	}))
	register("round", 1, 1, unary(func(x float64) (float64, error) {
		return math.Round(x), nil
	}))

	register("pow", 2, 2, func(args []float64) (float64, error) {
		if args[0] < 0 && args[1] != math.Trunc(args[1]) {
			return 0, fmt.Errorf("complex result")
		}
		return math.Pow(args[0], args[1]), nil
	})

	register("min", 2, Variadic, func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	})
	register("max", 2, Variadic, func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	})
}

// Lookup returns the function registered under name, matching
// case-insensitively.
func Lookup(name string) (*Function, bool) {
	f, ok := table[strings.ToLower(name)]
	return f, ok
}

// Constant returns the value of a named constant (pi, e), matching
// case-insensitively.
func Constant(name string) (float64, bool) {
	v, ok := constants[strings.ToLower(name)]
	return v, ok
}

// Names returns the registered function names in unspecified order;
// callers sort before display.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	return names
}
