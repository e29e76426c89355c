package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// contentSelectors are tried in order to find the part of the page holding the listing
var contentSelectors = []string{"div#pgContentWrap", "main"}

// invisibleElements never contribute text to the page
var invisibleElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// Normalize parses an HTML document and returns the trimmed, non-empty lines of
// visible text in its content area
func Normalize(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Lines(ContentArea(doc)), nil
}

// ContentArea returns the first matching content container, or the whole document
func ContentArea(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// Lines flattens the visible text of a selection into trimmed, non-empty lines
func Lines(sel *goquery.Selection) []string {
	var buf strings.Builder
	for _, node := range sel.Nodes {
		visibleText(node, &buf)
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func visibleText(node *html.Node, buf *strings.Builder) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		buf.WriteString(node.Data)
		return
	case html.ElementNode:
		if invisibleElements[node.Data] {
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		visibleText(child, buf)
	}
}
