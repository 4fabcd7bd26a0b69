package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/scrape"
)

var scrapeFlags struct {
	links    bool
	images   bool
	text     bool
	headings bool
	selector string
	jsonPath string
	csvPath  string
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract structured data from a web page",
	Long: `Fetch a web page and extract its structure: metadata, links, images,
headings, tables and visible text.

Requests carry a configurable User-Agent and respect a politeness
delay between fetches. Scripts, styles and navigation chrome are
stripped from extracted text.

Examples:
  # Page summary
  fieldkit scrape https://example.com

  # All links with their targets
  fieldkit scrape https://example.com --links

  # Visible text only
  fieldkit scrape https://example.com --text

  # Elements matching a simple selector (tag, .class, #id)
  fieldkit scrape https://example.com --selector "h2.title"

  # Export everything as JSON
  fieldkit scrape https://example.com --json page.json

  # Export the link list as CSV
  fieldkit scrape https://example.com --links --csv links.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVar(&scrapeFlags.links, "links", false, "list page links")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.images, "images", false, "list page images")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.text, "text", false, "print visible text")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.headings, "headings", false, "list page headings")
	scrapeCmd.Flags().StringVar(&scrapeFlags.selector, "selector", "", "print elements matching a simple CSS selector")
	scrapeCmd.Flags().StringVar(&scrapeFlags.jsonPath, "json", "", "export the extracted page to a JSON file")
	scrapeCmd.Flags().StringVar(&scrapeFlags.csvPath, "csv", "", "export the link list to a CSV file")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := scrape.New(scrape.Config{
		Timeout:   cfg.Scrape.Timeout,
		Delay:     cfg.Scrape.Delay,
		UserAgent: cfg.Scrape.UserAgent,
	})

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	if scrapeFlags.selector != "" {
		texts, err := client.Select(ctx, args[0], scrapeFlags.selector)
		if err != nil {
			return cli.NewCommandError("scrape", err)
		}
		if len(texts) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, text := range texts {
			fmt.Println(text)
		}
		return nil
	}

	page, err := client.Scrape(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("scrape", err)
	}

	if scrapeFlags.jsonPath != "" {
		if err := scrape.ExportJSON(page, scrapeFlags.jsonPath); err != nil {
			return cli.NewCommandError("scrape", err)
		}
		fmt.Printf("Wrote %s\n", scrapeFlags.jsonPath)
	}
	if scrapeFlags.csvPath != "" {
		if err := scrape.ExportLinksCSV(page.Links, scrapeFlags.csvPath); err != nil {
			return cli.NewCommandError("scrape", err)
		}
		fmt.Printf("Wrote %s (%d links)\n", scrapeFlags.csvPath, len(page.Links))
	}
	if scrapeFlags.jsonPath != "" || scrapeFlags.csvPath != "" {
		return nil
	}

	switch {
	case scrapeFlags.links:
		printScrapeLinks(page)
	case scrapeFlags.images:
		printScrapeImages(page)
	case scrapeFlags.text:
		fmt.Println(page.Text)
	case scrapeFlags.headings:
		printScrapeHeadings(page)
	default:
		printScrapeSummary(page)
	}
	return nil
}

func printScrapeSummary(page *scrape.Page) {
	fmt.Printf("URL:         %s\n", page.URL)
	fmt.Printf("Status:      %d\n", page.StatusCode)
	fmt.Printf("Title:       %s\n", page.Metadata.Title)
	if page.Metadata.Description != "" {
		fmt.Printf("Description: %s\n", page.Metadata.Description)
	}
	if len(page.Metadata.Keywords) > 0 {
		fmt.Printf("Keywords:    %s\n", strings.Join(page.Metadata.Keywords, ", "))
	}
	fmt.Printf("Links:       %d (%d external)\n", len(page.Links), page.ExternalLinks())
	fmt.Printf("Images:      %d\n", len(page.Images))
	headingCount := 0
	for _, hs := range page.Headings {
		headingCount += len(hs)
	}
	fmt.Printf("Headings:    %d\n", headingCount)
	fmt.Printf("Tables:      %d\n", len(page.Tables))
}

func printScrapeLinks(page *scrape.Page) {
	for _, link := range page.Links {
		marker := " "
		if link.External {
			marker = "*"
		}
		fmt.Printf("%s %-40s %s\n", marker, link.Text, link.URL)
	}
	fmt.Printf("%d links (* = external)\n", len(page.Links))
}

func printScrapeImages(page *scrape.Page) {
	for _, image := range page.Images {
		if image.Width > 0 || image.Height > 0 {
			fmt.Printf("%s (%dx%d) alt=%q\n", image.Src, image.Width, image.Height, image.Alt)
		} else {
			fmt.Printf("%s alt=%q\n", image.Src, image.Alt)
		}
	}
	fmt.Printf("%d images\n", len(page.Images))
}

func printScrapeHeadings(page *scrape.Page) {
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		for _, heading := range page.Headings[level] {
			fmt.Printf("%s: %s\n", level, heading)
		}
	}
}
