package scrape

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
)

// ExportJSON writes the scraped page as indented JSON.
func ExportJSON(page *Page, path string) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ExportLinksCSV writes links as a three-column CSV file
// (text, url, external).
func ExportLinksCSV(links []Link, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"text", "url", "external"}); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, link := range links {
		external := "no"
		if link.External {
			external = "yes"
		}
		if err := w.Write([]string{link.Text, link.URL, external}); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return f.Close()
}
