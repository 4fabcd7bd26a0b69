// Package scrape fetches web pages and extracts structured data from
// their HTML: head metadata (title, description, keywords, Open Graph
// fields, canonical URL), links with absolute URLs and an external
// flag, images, heading outlines, tables, and visible text.
//
// # Basic Usage
//
//	client := scrape.New(scrape.Config{})
//	page, err := client.Scrape(ctx, "https://example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(page.Metadata.Title, len(page.Links))
//
// The client enforces a politeness delay between consecutive
// requests, so a single Client shared across goroutines never hits a
// host faster than its configured rate. A small CSS-style selector
// (tag, #id, .class, descendant chains) is available through Select
// for targeted extraction.
//
// Callers remain responsible for honoring robots.txt and each site's
// terms of service.
package scrape
