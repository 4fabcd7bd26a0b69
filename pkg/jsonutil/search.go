package jsonutil

import (
	"reflect"
	"sort"
	"strconv"
)

// Search returns the dotted paths of every occurrence of key in the
// document. When value is non-nil, both key and value must match.
// Paths are returned sorted for deterministic output.
func (n *Navigator) Search(key string, value any) []string {
	var results []string
	searchWalk(n.data, "", key, value, &results)
	sort.Strings(results)
	return results
}

func searchWalk(obj any, prefix, key string, value any, results *[]string) {
	switch o := obj.(type) {
	case map[string]any:
		for k, v := range o {
			path := joinPath(prefix, k)
			if k == key && (value == nil || reflect.DeepEqual(v, value)) {
				*results = append(*results, path)
			}
			searchWalk(v, path, key, value, results)
		}
	case []any:
		for i, item := range o {
			searchWalk(item, joinPath(prefix, strconv.Itoa(i)), key, value, results)
		}
	}
}

// Flatten converts the nested document to a single-level map whose
// keys are the dotted paths of every scalar leaf.
func (n *Navigator) Flatten(separator string) map[string]any {
	if separator == "" {
		separator = "."
	}
	result := make(map[string]any)
	flattenWalk(n.data, "", separator, result)
	return result
}

func flattenWalk(obj any, prefix, separator string, result map[string]any) {
	switch o := obj.(type) {
	case map[string]any:
		for k, v := range o {
			flattenWalk(v, joinWith(prefix, k, separator), separator, result)
		}
	case []any:
		for i, item := range o {
			flattenWalk(item, joinWith(prefix, strconv.Itoa(i), separator), separator, result)
		}
	default:
		result[prefix] = obj
	}
}

func joinPath(prefix, part string) string {
	return joinWith(prefix, part, ".")
}

func joinWith(prefix, part, separator string) string {
	if prefix == "" {
		return part
	}
	return prefix + separator + part
}
