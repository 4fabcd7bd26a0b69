package scrape

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link is an anchor found on a page. URL is always absolute;
// External marks links pointing off the page's host.
type Link struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	External bool   `json:"external"`
}

// Image is an img element found on a page. Width and Height are zero
// when the markup does not declare them.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Metadata carries the page's head-level description fields.
type Metadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords,omitempty"`
	OGTitle       string   `json:"og_title,omitempty"`
	OGDescription string   `json:"og_description,omitempty"`
	OGImage       string   `json:"og_image,omitempty"`
	CanonicalURL  string   `json:"canonical_url,omitempty"`
}

// Page is everything extracted from one document. Headings is keyed
// by tag name ("h1" through "h6"); Tables is table → row → cell.
type Page struct {
	URL        string              `json:"url"`
	StatusCode int                 `json:"status_code"`
	Metadata   Metadata            `json:"metadata"`
	Text       string              `json:"text"`
	Links      []Link              `json:"links"`
	Images     []Image             `json:"images"`
	Headings   map[string][]string `json:"headings,omitempty"`
	Tables     [][][]string        `json:"tables,omitempty"`
}

// ExternalLinks counts the links that leave the page's host.
func (p *Page) ExternalLinks() int {
	n := 0
	for _, l := range p.Links {
		if l.External {
			n++
		}
	}
	return n
}

// maxLinkText bounds anchor text kept per link.
const maxLinkText = 100

// Extract parses an HTML document and pulls out metadata, links,
// images, headings, tables and visible text. Relative link and image
// URLs are resolved against pageURL.
func Extract(pageURL string, body []byte) (*Page, error) {
	root, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", pageURL, err)
	}

	page := &Page{
		URL:      pageURL,
		Headings: map[string][]string{},
	}
	extractInto(page, base, root)
	page.Text = visibleText(root)
	if len(page.Headings) == 0 {
		page.Headings = nil
	}
	return page, nil
}

func extractInto(page *Page, base *url.URL, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Title:
			page.Metadata.Title = nodeText(n)
		case atom.Meta:
			extractMeta(&page.Metadata, n)
		case atom.Link:
			if strings.EqualFold(attr(n, "rel"), "canonical") {
				page.Metadata.CanonicalURL = attr(n, "href")
			}
		case atom.A:
			if href := attr(n, "href"); href != "" {
				page.Links = append(page.Links, makeLink(base, n, href))
			}
		case atom.Img:
			if src := attr(n, "src"); src != "" {
				page.Images = append(page.Images, Image{
					Src:    resolveURL(base, src),
					Alt:    attr(n, "alt"),
					Width:  atoiAttr(n, "width"),
					Height: atoiAttr(n, "height"),
				})
			}
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			page.Headings[n.Data] = append(page.Headings[n.Data], nodeText(n))
		case atom.Table:
			if rows := extractTable(n); len(rows) > 0 {
				page.Tables = append(page.Tables, rows)
			}
			// Nested tables are rare and already captured above.
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractInto(page, base, c)
	}
}

func extractMeta(md *Metadata, n *html.Node) {
	name := strings.ToLower(attr(n, "name"))
	property := strings.ToLower(attr(n, "property"))
	content := attr(n, "content")

	switch {
	case name == "description":
		md.Description = content
	case name == "keywords":
		for _, k := range strings.Split(content, ",") {
			if k = strings.TrimSpace(k); k != "" {
				md.Keywords = append(md.Keywords, k)
			}
		}
	case property == "og:title":
		md.OGTitle = content
	case property == "og:description":
		md.OGDescription = content
	case property == "og:image":
		md.OGImage = content
	}
}

func makeLink(base *url.URL, n *html.Node, href string) Link {
	full := resolveURL(base, href)

	external := false
	if parsed, err := url.Parse(full); err == nil && base != nil {
		external = parsed.Host != base.Host
	}

	text := nodeText(n)
	if text == "" {
		text = "[image]"
	}
	if runes := []rune(text); len(runes) > maxLinkText {
		text = string(runes[:maxLinkText])
	}
	return Link{Text: text, URL: full, External: external}
}

func extractTable(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Th || c.DataAtom == atom.Td) {
					cells = append(cells, nodeText(c))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

// skippedText lists elements whose content never counts as page text.
var skippedText = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Nav:    true,
	atom.Footer: true,
	atom.Header: true,
}

// visibleText collects the document's readable text, one trimmed
// text node per line.
func visibleText(root *html.Node) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedText[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(lines, "\n")
}

// nodeText concatenates the trimmed text content of a subtree.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func atoiAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(attr(n, key))
	if err != nil {
		return 0
	}
	return v
}
