// Package markdown imports Markdown sources, with optional YAML front
// matter, into rich-text documents.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/athapong/richtext/pkg/richtext"
)

// FrontMatter is the metadata block at the top of a Markdown source
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title,omitempty"`
	Summary string         `yaml:"summary" json:"summary,omitempty"`
	Author  string         `yaml:"author" json:"author,omitempty"`
	Tags    []string       `yaml:"tags" json:"tags,omitempty"`
	Draft   bool           `yaml:"draft" json:"draft,omitempty"`
	Custom  map[string]any `yaml:",inline" json:"custom,omitempty"`
}

// Document is an imported Markdown source
type Document struct {
	Meta FrontMatter    `json:"meta"`
	Root *richtext.Node `json:"root"`
}

// Importer converts Markdown into rich-text trees. It holds no per-call
// state and may be shared.
type Importer struct {
	md goldmark.Markdown
}

// New returns an Importer with the strikethrough extension enabled.
func New() *Importer {
	return &Importer{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough)),
	}
}

// Import parses source, splitting off front matter when present.
func (im *Importer) Import(source []byte) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	root := im.md.Parser().Parse(text.NewReader(body))
	c := &converter{source: body}
	return &Document{
		Meta: meta,
		Root: richtext.NewDocument(c.blocks(root)...),
	}, nil
}

// Import converts source with a default Importer.
func Import(source []byte) (*Document, error) {
	return New().Import(source)
}

type converter struct {
	source []byte
}

func (c *converter) blocks(parent ast.Node) []*richtext.Node {
	var out []*richtext.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.block(n)...)
	}
	return out
}

func (c *converter) block(n ast.Node) []*richtext.Node {
	switch n := n.(type) {
	case *ast.Heading:
		heading, err := richtext.NewHeading(n.Level, c.inlines(n, nil)...)
		if err != nil {
			return nil
		}
		return []*richtext.Node{heading}
	case *ast.Paragraph:
		return []*richtext.Node{richtext.NewParagraph(c.inlines(n, nil)...)}
	case *ast.TextBlock:
		// tight list items hold their text directly
		return c.inlines(n, nil)
	case *ast.List:
		list := richtext.NewList(n.IsOrdered(), c.blocks(n)...)
		if n.IsOrdered() && n.Start > 1 {
			list.Attrs = richtext.Attrs{{Key: "start", Value: n.Start}}
		}
		return []*richtext.Node{list}
	case *ast.ListItem:
		return []*richtext.Node{richtext.NewListItem(c.blocks(n)...)}
	case *ast.Blockquote:
		return []*richtext.Node{{Type: richtext.TypeBlockquote, Content: c.blocks(n)}}
	case *ast.FencedCodeBlock:
		node := c.codeBlock(n)
		if lang := n.Language(c.source); len(lang) > 0 {
			node.Attrs = richtext.Attrs{{Key: "class", Value: "language-" + string(lang)}}
		}
		return []*richtext.Node{node}
	case *ast.CodeBlock:
		return []*richtext.Node{c.codeBlock(n)}
	case *ast.ThematicBreak:
		return []*richtext.Node{{Type: richtext.TypeHorizontalRule}}
	case *ast.HTMLBlock:
		// raw HTML is never passed through
		return nil
	default:
		return c.blocks(n)
	}
}

func (c *converter) codeBlock(n ast.Node) *richtext.Node {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	code := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return &richtext.Node{
		Type:    richtext.TypeCodeBlock,
		Content: []*richtext.Node{richtext.NewText(string(code))},
	}
}

// inlines converts the inline children of parent. marks are the marks of the
// enclosing inline elements, innermost first.
func (c *converter) inlines(parent ast.Node, marks []*richtext.Mark) []*richtext.Node {
	var out []*richtext.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		for _, node := range c.inline(n, marks) {
			out = appendText(out, node)
		}
	}
	return out
}

func (c *converter) inline(n ast.Node, marks []*richtext.Mark) []*richtext.Node {
	switch n := n.(type) {
	case *ast.Text:
		out := []*richtext.Node{richtext.NewText(string(n.Segment.Value(c.source)), marks...)}
		switch {
		case n.HardLineBreak():
			out = append(out, &richtext.Node{Type: richtext.TypeHardBreak})
		case n.SoftLineBreak():
			out = append(out, richtext.NewText("\n", marks...))
		}
		return out
	case *ast.String:
		return []*richtext.Node{richtext.NewText(string(n.Value), marks...)}
	case *ast.Emphasis:
		t := richtext.MarkItalic
		if n.Level >= 2 {
			t = richtext.MarkBold
		}
		return c.inlines(n, wrap(marks, richtext.NewMark(t)))
	case *extast.Strikethrough:
		return c.inlines(n, wrap(marks, richtext.NewMark(richtext.MarkStrike)))
	case *ast.CodeSpan:
		return c.inlines(n, wrap(marks, richtext.NewMark(richtext.MarkCode)))
	case *ast.Link:
		link, err := richtext.NewLink(linkAttrs(string(n.Destination), false))
		if err != nil {
			return c.inlines(n, marks)
		}
		if len(n.Title) > 0 {
			link.Attrs = link.Attrs.Set("title", string(n.Title))
		}
		return c.inlines(n, wrap(marks, link))
	case *ast.AutoLink:
		url := string(n.URL(c.source))
		link, err := richtext.NewLink(linkAttrs(url, n.AutoLinkType == ast.AutoLinkEmail))
		if err != nil {
			return []*richtext.Node{richtext.NewText(url, marks...)}
		}
		return []*richtext.Node{richtext.NewText(string(n.Label(c.source)), wrap(marks, link)...)}
	case *ast.Image:
		img, err := richtext.NewImage(richtext.ImageAttrs{
			Src:   string(n.Destination),
			Alt:   c.plain(n),
			Title: string(n.Title),
		})
		if err != nil {
			return nil
		}
		return []*richtext.Node{img}
	case *ast.RawHTML:
		return nil
	default:
		return c.inlines(n, marks)
	}
}

// plain returns the concatenated text below n.
func (c *converter) plain(n ast.Node) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			buf.Write(child.Segment.Value(c.source))
		case *ast.String:
			buf.Write(child.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func linkAttrs(dest string, email bool) richtext.LinkAttrs {
	if email || strings.HasPrefix(dest, "mailto:") {
		return richtext.LinkAttrs{Href: strings.TrimPrefix(dest, "mailto:"), LinkType: richtext.LinkEmail}
	}
	return richtext.LinkAttrs{Href: dest, LinkType: richtext.LinkURL}
}

// wrap returns marks with m added as the new innermost mark.
func wrap(marks []*richtext.Mark, m *richtext.Mark) []*richtext.Mark {
	out := make([]*richtext.Mark, 0, len(marks)+1)
	out = append(out, m)
	return append(out, marks...)
}

// appendText appends node to nodes, merging it into the previous text node
// when both carry the same marks.
func appendText(nodes []*richtext.Node, node *richtext.Node) []*richtext.Node {
	if len(nodes) == 0 || node.Type != richtext.TypeText {
		return append(nodes, node)
	}
	prev := nodes[len(nodes)-1]
	if prev.Type != richtext.TypeText || !sameMarks(prev.Marks, node.Marks) {
		return append(nodes, node)
	}
	nodes[len(nodes)-1] = richtext.NewText(prev.Text+node.Text, prev.Marks...)
	return nodes
}

func sameMarks(a, b []*richtext.Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Title returns the front matter title, falling back to the first heading
// of the document.
func (d *Document) Title() string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	if d.Root == nil {
		return ""
	}
	for _, n := range d.Root.Content {
		if n.Type != richtext.TypeHeading {
			continue
		}
		return headingText(n)
	}
	return ""
}

// Outline lists the headings of the document as "level:text" entries.
func (d *Document) Outline() []string {
	var out []string
	if d.Root == nil {
		return out
	}
	for _, n := range d.Root.Content {
		if n.Type != richtext.TypeHeading {
			continue
		}
		h, err := n.Heading()
		if err != nil {
			continue
		}
		out = append(out, strconv.Itoa(h.Level)+":"+headingText(n))
	}
	return out
}

func headingText(n *richtext.Node) string {
	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(child.Text)
	}
	return b.String()
}
