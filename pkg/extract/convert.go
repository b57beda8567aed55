package extract

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Format is an output format for rendered documents
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat validates a user supplied format name. An empty name selects
// HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatMarkdown, FormatText:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want html, markdown or text)", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return ".html"
	}
}

// ToMarkdown converts rendered HTML into Markdown.
func ToMarkdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

// Convert turns rendered HTML into the requested format.
func Convert(html string, format Format) (string, error) {
	switch format {
	case FormatHTML, "":
		return html, nil
	case FormatMarkdown:
		return ToMarkdown(html)
	case FormatText:
		return PlainText(html)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// Diff performs a semantic diff of two renderings. Lines are prefixed with
// "- " for deletions, "+ " for insertions and two spaces for unchanged text.
func Diff(source, target string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(source, target, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var result strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			result.WriteString("- " + strings.ReplaceAll(diff.Text, "\n", "\n- ") + "\n")
		case diffmatchpatch.DiffInsert:
			result.WriteString("+ " + strings.ReplaceAll(diff.Text, "\n", "\n+ ") + "\n")
		case diffmatchpatch.DiffEqual:
			result.WriteString("  " + strings.ReplaceAll(diff.Text, "\n", "\n  ") + "\n")
		}
	}

	return result.String()
}
