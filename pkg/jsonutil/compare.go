package jsonutil

import (
	"fmt"
	"sort"
)

// DiffKind classifies one difference between two documents.
type DiffKind string

const (
	DiffTypeChange DiffKind = "type_change" // values have different JSON types
	DiffAdded      DiffKind = "added"       // present only in the second document
	DiffRemoved    DiffKind = "removed"     // present only in the first document
	DiffChanged    DiffKind = "changed"     // scalar value differs
)

// Diff is one difference at a dotted path. Old and New are nil for
// the side a value is absent from.
type Diff struct {
	Path string   `json:"path"`
	Kind DiffKind `json:"kind"`
	Old  any      `json:"old"`
	New  any      `json:"new"`
}

func (d Diff) String() string {
	switch d.Kind {
	case DiffAdded:
		return fmt.Sprintf("%s: added %v", d.Path, d.New)
	case DiffRemoved:
		return fmt.Sprintf("%s: removed %v", d.Path, d.Old)
	case DiffTypeChange:
		return fmt.Sprintf("%s: type changed from %T to %T", d.Path, d.Old, d.New)
	default:
		return fmt.Sprintf("%s: %v -> %v", d.Path, d.Old, d.New)
	}
}

// Compare walks two documents in parallel and reports every
// structural and scalar difference. Object keys are visited in
// sorted order so the result is deterministic.
func Compare(a, b any) []Diff {
	return compareWalk(a, b, "")
}

func compareWalk(a, b any, path string) []Diff {
	label := path
	if label == "" {
		label = "(root)"
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)

	if aIsMap != bIsMap || aIsArr != bIsArr {
		return []Diff{{Path: label, Kind: DiffTypeChange, Old: a, New: b}}
	}

	switch {
	case aIsMap:
		keys := make(map[string]bool, len(aMap)+len(bMap))
		for k := range aMap {
			keys[k] = true
		}
		for k := range bMap {
			keys[k] = true
		}
		sorted := make([]string, 0, len(keys))
		for k := range keys {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)

		var diffs []Diff
		for _, k := range sorted {
			childPath := joinPath(path, k)
			av, inA := aMap[k]
			bv, inB := bMap[k]
			switch {
			case !inA:
				diffs = append(diffs, Diff{Path: childPath, Kind: DiffAdded, New: bv})
			case !inB:
				diffs = append(diffs, Diff{Path: childPath, Kind: DiffRemoved, Old: av})
			default:
				diffs = append(diffs, compareWalk(av, bv, childPath)...)
			}
		}
		return diffs

	case aIsArr:
		var diffs []Diff
		maxLen := len(aArr)
		if len(bArr) > maxLen {
			maxLen = len(bArr)
		}
		for i := 0; i < maxLen; i++ {
			childPath := joinPath(path, fmt.Sprintf("%d", i))
			switch {
			case i >= len(aArr):
				diffs = append(diffs, Diff{Path: childPath, Kind: DiffAdded, New: bArr[i]})
			case i >= len(bArr):
				diffs = append(diffs, Diff{Path: childPath, Kind: DiffRemoved, Old: aArr[i]})
			default:
				diffs = append(diffs, compareWalk(aArr[i], bArr[i], childPath)...)
			}
		}
		return diffs

	default:
		if !scalarEqual(a, b) {
			kind := DiffChanged
			if fmt.Sprintf("%T", a) != fmt.Sprintf("%T", b) {
				kind = DiffTypeChange
			}
			return []Diff{{Path: label, Kind: kind, Old: a, New: b}}
		}
		return nil
	}
}

func scalarEqual(a, b any) bool {
	return a == b
}
