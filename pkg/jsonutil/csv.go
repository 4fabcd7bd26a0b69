package jsonutil

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
)

// RecordsToCSV converts an array of flat JSON objects to CSV. The
// header row is the sorted union of all object keys; missing fields
// render as empty cells. Non-object array elements are an error.
func RecordsToCSV(data any, delimiter rune) (string, error) {
	arr, ok := data.([]any)
	if !ok {
		return "", fmt.Errorf("CSV conversion requires a JSON array, got %T", data)
	}
	if len(arr) == 0 {
		return "", nil
	}

	keys := make(map[string]bool)
	records := make([]map[string]any, 0, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return "", fmt.Errorf("element %d is not an object (%T)", i, item)
		}
		records = append(records, obj)
		for k := range obj {
			keys[k] = true
		}
	}

	headers := make([]string, 0, len(keys))
	for k := range keys {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if delimiter != 0 {
		w.Comma = delimiter
	}

	if err := w.Write(headers); err != nil {
		return "", err
	}
	row := make([]string, len(headers))
	for _, record := range records {
		for i, h := range headers {
			v, ok := record[h]
			if !ok || v == nil {
				row[i] = ""
				continue
			}
			row[i] = fmt.Sprintf("%v", v)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}
