package richtext

import (
	"strconv"
	"strings"

	"github.com/athapong/richtext/pkg/imageurl"
)

// nodeResolver renders a node given its already rendered children.
type nodeResolver func(r *Renderer, node *Node, children []string, path string) string

// markResolver wraps already rendered text in the markup of a mark.
type markResolver func(r *Renderer, mark *Mark, inner string, path string) string

var (
	renderDocument      = element("div")
	renderParagraph     = element("p")
	renderUnorderedList = element("ul")
	renderOrderedList   = element("ol")
	renderListItem      = element("li")
	renderBlockquote    = element("blockquote")
	renderHorizontal    = void("hr")
	renderHardBreak     = void("br")

	renderBold        = inline("strong")
	renderItalic      = inline("em")
	renderUnderline   = inline("u")
	renderStrike      = inline("s")
	renderCode        = inline("code")
	renderSuperscript = inline("sup")
	renderSubscript   = inline("sub")
	renderHighlight   = inline("mark")
	renderStyled      = inline("span")
)

// lookupNode returns the resolver for t, or nil when t is not a known
// node type.
func lookupNode(t NodeType) nodeResolver {
	switch t {
	case TypeDocument:
		return renderDocument
	case TypeHeading:
		return renderHeading
	case TypeParagraph:
		return renderParagraph
	case TypeUnorderedList:
		return renderUnorderedList
	case TypeOrderedList:
		return renderOrderedList
	case TypeListItem:
		return renderListItem
	case TypeBlockquote:
		return renderBlockquote
	case TypeCodeBlock:
		return renderCodeBlock
	case TypeHorizontalRule:
		return renderHorizontal
	case TypeHardBreak:
		return renderHardBreak
	case TypeImage:
		return renderImage
	case TypeText:
		return renderTextNode
	default:
		return nil
	}
}

// lookupMark returns the resolver for t, or nil when t is not a known mark
// type.
func lookupMark(t MarkType) markResolver {
	switch t {
	case MarkBold:
		return renderBold
	case MarkItalic:
		return renderItalic
	case MarkUnderline:
		return renderUnderline
	case MarkStrike:
		return renderStrike
	case MarkCode:
		return renderCode
	case MarkSuperscript:
		return renderSuperscript
	case MarkSubscript:
		return renderSubscript
	case MarkHighlight:
		return renderHighlight
	case MarkStyled:
		return renderStyled
	case MarkLink, MarkAnchor:
		return renderLink
	default:
		return nil
	}
}

func element(tag string) nodeResolver {
	return func(r *Renderer, node *Node, children []string, _ string) string {
		return "<" + tag + " " + r.attrString(node.Attrs) + ">" + strings.Join(children, "") + "</" + tag + ">"
	}
}

func void(tag string) nodeResolver {
	return func(r *Renderer, node *Node, _ []string, _ string) string {
		return "<" + tag + " " + r.attrString(node.Attrs) + "/>"
	}
}

func inline(tag string) markResolver {
	return func(r *Renderer, mark *Mark, inner string, _ string) string {
		return "<" + tag + " " + r.attrString(mark.Attrs) + ">" + inner + "</" + tag + ">"
	}
}

func renderTextNode(r *Renderer, node *Node, _ []string, path string) string {
	return r.renderText(node, path)
}

func renderHeading(r *Renderer, node *Node, children []string, path string) string {
	heading, err := node.Heading()
	if err != nil {
		r.report(Diagnostic{
			Kind:    DiagnosticMalformedAttrs,
			Type:    string(node.Type),
			Path:    path,
			Message: err.Error(),
		})
	}
	tag := "h" + strconv.Itoa(heading.Level)
	return "<" + tag + " " + r.attrString(node.Attrs) + ">" + strings.Join(children, "") + "</" + tag + ">"
}

func renderCodeBlock(r *Renderer, node *Node, children []string, _ string) string {
	return "<pre><code " + r.attrString(node.Attrs) + ">" + strings.Join(children, "") + "</code></pre>"
}

func renderImage(r *Renderer, node *Node, _ []string, path string) string {
	img, err := node.Image()
	if err != nil {
		r.report(Diagnostic{
			Kind:    DiagnosticMalformedAttrs,
			Type:    string(node.Type),
			Path:    path,
			Message: err.Error(),
		})
		return ""
	}

	built := imageurl.Build(img.Src, r.image)
	attrs := node.Attrs.Set("src", built.Src)
	for _, extra := range built.Attrs {
		if _, ok := attrs.Get(extra.Key); !ok {
			attrs = append(attrs, Attr{Key: extra.Key, Value: extra.Value})
		}
	}
	return "<img " + r.attrString(attrs) + "/>"
}

// renderLink serializes the mark's attributes except href and target, then
// the computed href and the optional target. inner is already escaped.
func renderLink(r *Renderer, mark *Mark, inner string, path string) string {
	link, err := mark.Link()
	if err != nil && !(mark.Type == MarkAnchor && link.LinkType == "") {
		r.report(Diagnostic{
			Kind:    DiagnosticMalformedAttrs,
			Type:    string(mark.Type),
			Path:    path,
			Message: err.Error(),
		})
	}

	parts := mark.Attrs.Without("href", "target").pairs(r.escapeAttrs)
	parts = append(parts, pair("href", link.URL(), r.escapeAttrs))
	if link.Target != "" {
		parts = append(parts, pair("target", link.Target, r.escapeAttrs))
	}
	return "<a " + strings.Join(parts, " ") + ">" + inner + "</a>"
}
