// Package calc provides the calculator session used by the one-shot
// and interactive CLI modes, plus number-list statistics and
// financial formulas.
//
// A Session remembers the last result so that expressions can refer
// to it as "ans", and keeps a bounded in-memory history of successful
// evaluations. The expression pipeline itself is stateless; all state
// lives here.
package calc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"fieldkit-hq/fieldkit/pkg/expr"
)

// DefaultMaxExpressionLength caps input size before lexing. The
// expression core recurses proportionally to input length, so the cap
// is enforced by the caller as a guard against pathological input.
const DefaultMaxExpressionLength = 1024

// HistoryEntry is one successful evaluation.
type HistoryEntry struct {
	Expression string
	Result     float64
}

// Session is a stateful wrapper around the expression evaluator.
// It is not safe for concurrent use; each REPL or command invocation
// owns its session.
type Session struct {
	memory    float64
	last      *float64
	history   []HistoryEntry
	maxLength int
}

// NewSession creates a session with the default input-length cap.
func NewSession() *Session {
	return &Session{maxLength: DefaultMaxExpressionLength}
}

// SetMaxExpressionLength overrides the input-length cap. Zero or
// negative disables the cap.
func (s *Session) SetMaxExpressionLength(n int) {
	s.maxLength = n
}

// Evaluate substitutes "ans" with the previous result, evaluates the
// expression and records it in the session history.
func (s *Session) Evaluate(input string) (float64, error) {
	if s.maxLength > 0 && len(input) > s.maxLength {
		return 0, fmt.Errorf("expression exceeds maximum length of %d characters", s.maxLength)
	}

	prepared := s.substituteAns(input)

	result, err := expr.Evaluate(prepared)
	if err != nil {
		return 0, err
	}

	s.last = &result
	s.history = append(s.history, HistoryEntry{Expression: input, Result: result})
	return result, nil
}

// LastResult returns the most recent result, or false if nothing has
// been evaluated yet.
func (s *Session) LastResult() (float64, bool) {
	if s.last == nil {
		return 0, false
	}
	return *s.last, true
}

// History returns up to n most recent entries, oldest first.
func (s *Session) History(n int) []HistoryEntry {
	if n <= 0 || n >= len(s.history) {
		return s.history
	}
	return s.history[len(s.history)-n:]
}

// Memory operations mirror the classic M+/MR/MC calculator keys.

func (s *Session) MemoryStore(v float64) { s.memory = v }
func (s *Session) MemoryRecall() float64 { return s.memory }
func (s *Session) MemoryAdd(v float64)   { s.memory += v }
func (s *Session) MemoryClear()          { s.memory = 0 }

// substituteAns replaces whole-word occurrences of "ans" (any case)
// with the parenthesized previous result. With no previous result,
// "ans" is left alone so the parser reports it as unknown.
func (s *Session) substituteAns(input string) string {
	if s.last == nil || !strings.Contains(strings.ToLower(input), "ans") {
		return input
	}

	// 'f' keeps the rendering in plain decimal; the lexer has no
	// exponent syntax, so 'g' output like 1e+21 would not tokenize.
	replacement := "(" + strconv.FormatFloat(*s.last, 'f', -1, 64) + ")"

	var sb strings.Builder
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) {
			sb.WriteRune(runes[i])
			i++
			continue
		}
		start := i
		for i < len(runes) && unicode.IsLetter(runes[i]) {
			i++
		}
		word := string(runes[start:i])
		if strings.EqualFold(word, "ans") {
			sb.WriteString(replacement)
		} else {
			sb.WriteString(word)
		}
	}
	return sb.String()
}
