// Package extract derives plain text, outlines and other formats from
// rendered rich-text HTML.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements that end a line of plain text.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, pre, blockquote, br, hr"

var blankLines = regexp.MustCompile(`\n{3,}`)

// Heading is a heading found in the rendered document
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink found in the rendered document
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Summary holds structural information extracted from rendered HTML
type Summary struct {
	Text     string    `json:"text"`
	Words    int       `json:"words"`
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML: %w", err)
	}
	return doc, nil
}

// PlainText strips the markup from html, keeping one line per block element.
func PlainText(html string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}
	return plainText(doc), nil
}

func plainText(doc *goquery.Document) string {
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})
	text := doc.Find("body").Text()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// Summarize extracts the plain text, word count, heading outline and links
// of html.
func Summarize(html string) (*Summary, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Headings: make([]Heading, 0),
		Links:    make([]Link, 0),
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		summary.Headings = append(summary.Headings, Heading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
		})
	})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		summary.Links = append(summary.Links, Link{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})

	summary.Text = plainText(doc)
	summary.Words = len(strings.Fields(summary.Text))
	return summary, nil
}
