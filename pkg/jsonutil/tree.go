package jsonutil

import (
	"fmt"
	"sort"
	"strings"
)

// Tree renders the document as an indented tree using box-drawing
// connectors, one line per key or element. Object keys are sorted.
func (n *Navigator) Tree() string {
	var sb strings.Builder
	treeWalk(&sb, n.data, "")
	return sb.String()
}

func treeWalk(sb *strings.Builder, obj any, prefix string) {
	switch o := obj.(type) {
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i, k := range keys {
			last := i == len(keys)-1
			connector, childPrefix := connectors(prefix, last)
			v := o[k]
			if isContainer(v) {
				fmt.Fprintf(sb, "%s%s%s\n", prefix, connector, k)
				treeWalk(sb, v, childPrefix)
			} else {
				fmt.Fprintf(sb, "%s%s%s: %s\n", prefix, connector, k, renderScalar(v))
			}
		}
	case []any:
		for i, item := range o {
			last := i == len(o)-1
			connector, childPrefix := connectors(prefix, last)
			if isContainer(item) {
				fmt.Fprintf(sb, "%s%s[%d]\n", prefix, connector, i)
				treeWalk(sb, item, childPrefix)
			} else {
				fmt.Fprintf(sb, "%s%s[%d]: %s\n", prefix, connector, i, renderScalar(item))
			}
		}
	default:
		fmt.Fprintf(sb, "%s\n", renderScalar(obj))
	}
}

func connectors(prefix string, last bool) (connector, childPrefix string) {
	if last {
		return "└── ", prefix + "    "
	}
	return "├── ", prefix + "│   "
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func renderScalar(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
