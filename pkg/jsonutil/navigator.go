// Package jsonutil inspects and edits arbitrary JSON documents:
// dotted-path navigation, key search, flattening, structural
// comparison, tree rendering and record-to-CSV conversion.
//
// Documents are held as the generic encoding/json representation
// (map[string]any, []any, float64, string, bool, nil).
package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PathError reports a path that cannot be resolved against the
// document.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}

// Navigator wraps a decoded JSON document for path-based access.
type Navigator struct {
	data any
}

// NewNavigator wraps an already-decoded document.
func NewNavigator(data any) *Navigator {
	return &Navigator{data: data}
}

// FromFile reads and decodes a JSON file.
func FromFile(path string) (*Navigator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return FromString(string(raw))
}

// FromString decodes a JSON document from a string.
func FromString(s string) (*Navigator, error) {
	var data any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &Navigator{data: data}, nil
}

// Data returns the underlying document.
func (n *Navigator) Data() any {
	return n.data
}

// step is one resolved path segment: either a map key or an array
// index.
type step struct {
	key   string
	index int
	isKey bool
}

// parsePath splits a dotted path into steps. Numeric segments and
// bracket suffixes address array elements: "users.0.name" and
// "users[0].name" are equivalent.
func parsePath(path string) ([]step, error) {
	if path == "" {
		return nil, nil
	}

	var steps []step
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, &PathError{Path: path, Reason: "empty segment"}
		}

		// Peel bracket suffixes: "b[0][1]" → key b, index 0, index 1.
		rest := part
		key := rest
		var indexes []int
		if open := strings.IndexByte(rest, '['); open >= 0 {
			key = rest[:open]
			rest = rest[open:]
			for rest != "" {
				if rest[0] != '[' {
					return nil, &PathError{Path: path, Reason: fmt.Sprintf("malformed segment %q", part)}
				}
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					return nil, &PathError{Path: path, Reason: fmt.Sprintf("unterminated index in %q", part)}
				}
				idx, err := strconv.Atoi(rest[1:end])
				if err != nil {
					return nil, &PathError{Path: path, Reason: fmt.Sprintf("non-numeric index in %q", part)}
				}
				indexes = append(indexes, idx)
				rest = rest[end+1:]
			}
		}

		if key != "" {
			if idx, err := strconv.Atoi(key); err == nil && len(indexes) == 0 {
				steps = append(steps, step{index: idx})
			} else {
				steps = append(steps, step{key: key, isKey: true})
			}
		} else if len(indexes) == 0 {
			return nil, &PathError{Path: path, Reason: fmt.Sprintf("malformed segment %q", part)}
		}
		for _, idx := range indexes {
			steps = append(steps, step{index: idx})
		}
	}
	return steps, nil
}

// Get resolves a dotted path. The boolean reports whether the path
// exists; a missing path is not an error.
func (n *Navigator) Get(path string) (any, bool) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, false
	}

	current := n.data
	for _, s := range steps {
		switch obj := current.(type) {
		case map[string]any:
			if !s.isKey {
				// Numeric segments also try map keys ("users.0" on a
				// map with key "0").
				v, ok := obj[strconv.Itoa(s.index)]
				if !ok {
					return nil, false
				}
				current = v
				continue
			}
			v, ok := obj[s.key]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if s.isKey || s.index < 0 || s.index >= len(obj) {
				return nil, false
			}
			current = obj[s.index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes a value at a dotted path, creating intermediate maps
// for missing keys. Array indexes must already exist.
func (n *Navigator) Set(path string, value any) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		n.data = value
		return nil
	}

	current := n.data
	for _, s := range steps[:len(steps)-1] {
		switch obj := current.(type) {
		case map[string]any:
			key := s.key
			if !s.isKey {
				key = strconv.Itoa(s.index)
			}
			v, ok := obj[key]
			if !ok {
				v = map[string]any{}
				obj[key] = v
			}
			current = v
		case []any:
			if s.isKey {
				return &PathError{Path: path, Reason: fmt.Sprintf("cannot use key %q to index an array", s.key)}
			}
			if s.index < 0 || s.index >= len(obj) {
				return &PathError{Path: path, Reason: fmt.Sprintf("index %d out of range", s.index)}
			}
			current = obj[s.index]
		default:
			return &PathError{Path: path, Reason: "intermediate value is not an object or array"}
		}
	}

	last := steps[len(steps)-1]
	switch obj := current.(type) {
	case map[string]any:
		key := last.key
		if !last.isKey {
			key = strconv.Itoa(last.index)
		}
		obj[key] = value
	case []any:
		if last.isKey {
			return &PathError{Path: path, Reason: fmt.Sprintf("cannot use key %q to index an array", last.key)}
		}
		if last.index < 0 || last.index >= len(obj) {
			return &PathError{Path: path, Reason: fmt.Sprintf("index %d out of range", last.index)}
		}
		obj[last.index] = value
	default:
		return &PathError{Path: path, Reason: "target is not an object or array"}
	}
	return nil
}

// Delete removes the value at a dotted path. Deleting from an array
// shifts later elements down.
func (n *Navigator) Delete(path string) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return &PathError{Path: path, Reason: "cannot delete the document root"}
	}

	// Resolve the parent, then remove the final segment from it.
	parentPath := steps[:len(steps)-1]
	current := n.data
	for _, s := range parentPath {
		switch obj := current.(type) {
		case map[string]any:
			key := s.key
			if !s.isKey {
				key = strconv.Itoa(s.index)
			}
			v, ok := obj[key]
			if !ok {
				return &PathError{Path: path, Reason: "path does not exist"}
			}
			current = v
		case []any:
			if s.isKey || s.index < 0 || s.index >= len(obj) {
				return &PathError{Path: path, Reason: "path does not exist"}
			}
			current = obj[s.index]
		default:
			return &PathError{Path: path, Reason: "path does not exist"}
		}
	}

	last := steps[len(steps)-1]
	switch obj := current.(type) {
	case map[string]any:
		key := last.key
		if !last.isKey {
			key = strconv.Itoa(last.index)
		}
		if _, ok := obj[key]; !ok {
			return &PathError{Path: path, Reason: "path does not exist"}
		}
		delete(obj, key)
		return nil
	case []any:
		if last.isKey || last.index < 0 || last.index >= len(obj) {
			return &PathError{Path: path, Reason: "path does not exist"}
		}
		// Arrays are modified in place via the parent reference.
		trimmed := append(obj[:last.index], obj[last.index+1:]...)
		return n.replaceParent(parentPath, trimmed)
	default:
		return &PathError{Path: path, Reason: "path does not exist"}
	}
}

// replaceParent writes a new value at the position identified by
// steps; used when array deletion produces a new slice header.
func (n *Navigator) replaceParent(steps []step, value any) error {
	if len(steps) == 0 {
		n.data = value
		return nil
	}

	parts := make([]string, len(steps))
	for i, s := range steps {
		if s.isKey {
			parts[i] = s.key
		} else {
			parts[i] = strconv.Itoa(s.index)
		}
	}
	return n.Set(strings.Join(parts, "."), value)
}

// Encode renders the document. indent <= 0 produces compact
// (minified) output.
func (n *Navigator) Encode(indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(n.data)
	}
	return json.MarshalIndent(n.data, "", strings.Repeat(" ", indent))
}

// Save writes the document to a file with the given indentation.
func (n *Navigator) Save(path string, indent int) error {
	out, err := n.Encode(indent)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
