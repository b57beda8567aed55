package adf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/richtext"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
)

// Decode parses an ADF JSON document
func Decode(data []byte) (*Node, error) {
	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse ADF content: %w", err)
	}
	return &node, nil
}

// Convert converts an ADF document into a rich-text document. Container
// types without a rich-text equivalent (tables, panels, ...) are replaced
// by their converted children.
func Convert(node *Node) *richtext.Node {
	if node == nil {
		return nil
	}
	nodes := convertNode(node)
	if len(nodes) == 1 && nodes[0].Type == richtext.TypeDocument {
		return nodes[0]
	}
	return richtext.NewDocument(nodes...)
}

func convertNode(node *Node) []*richtext.Node {
	if node == nil {
		return nil
	}

	switch node.Type {
	case "doc":
		return block(richtext.TypeDocument, nil, node)
	case "paragraph":
		return block(richtext.TypeParagraph, nil, node)
	case "heading":
		return convertHeading(node)
	case "text":
		return []*richtext.Node{convertText(node.Text, node.Marks)}
	case "hardBreak":
		return []*richtext.Node{{Type: richtext.TypeHardBreak}}
	case "bulletList":
		return block(richtext.TypeUnorderedList, nil, node)
	case "orderedList":
		return block(richtext.TypeOrderedList, pick(node.Attrs, "order"), node)
	case "listItem":
		return block(richtext.TypeListItem, nil, node)
	case "codeBlock":
		return convertCodeBlock(node)
	case "blockquote":
		return block(richtext.TypeBlockquote, nil, node)
	case "rule":
		return []*richtext.Node{{Type: richtext.TypeHorizontalRule}}
	case "media":
		return convertMedia(node)
	case "mention":
		return inlineText(node, "text")
	case "emoji":
		return inlineText(node, "text", "shortName")
	case "inlineCard":
		return convertCard(node)
	default:
		return convertChildren(node)
	}
}

func block(t richtext.NodeType, attrs richtext.Attrs, node *Node) []*richtext.Node {
	return []*richtext.Node{{
		Type:    t,
		Attrs:   attrs,
		Content: convertChildren(node),
	}}
}

func convertChildren(node *Node) []*richtext.Node {
	if node.Content == nil {
		return nil
	}
	children := make([]*richtext.Node, 0, len(node.Content))
	for _, child := range node.Content {
		children = append(children, convertNode(child)...)
	}
	return children
}

func convertHeading(node *Node) []*richtext.Node {
	level := 1
	if l, ok := node.Attrs["level"].(float64); ok {
		level = int(l)
	}
	heading, err := richtext.NewHeading(level, convertChildren(node)...)
	if err != nil {
		heading, _ = richtext.NewHeading(richtext.DefaultHeadingLevel, convertChildren(node)...)
	}
	return []*richtext.Node{heading}
}

func convertCodeBlock(node *Node) []*richtext.Node {
	var attrs richtext.Attrs
	if lang, ok := node.Attrs["language"].(string); ok && lang != "" {
		attrs = richtext.Attrs{{Key: "class", Value: "language-" + lang}}
	}
	return block(richtext.TypeCodeBlock, attrs, node)
}

func convertMedia(node *Node) []*richtext.Node {
	src, _ := node.Attrs["url"].(string)
	if src == "" {
		return nil
	}
	alt, _ := node.Attrs["alt"].(string)
	img, err := richtext.NewImage(richtext.ImageAttrs{Src: src, Alt: alt})
	if err != nil {
		return nil
	}
	return []*richtext.Node{img}
}

func convertCard(node *Node) []*richtext.Node {
	url, _ := node.Attrs["url"].(string)
	if url == "" {
		return nil
	}
	link, err := richtext.NewLink(richtext.LinkAttrs{Href: url, LinkType: richtext.LinkURL})
	if err != nil {
		return nil
	}
	return []*richtext.Node{richtext.NewText(url, link)}
}

// inlineText turns inline nodes that only carry display text in their attrs
// into plain text nodes.
func inlineText(node *Node, keys ...string) []*richtext.Node {
	for _, key := range keys {
		if text, ok := node.Attrs[key].(string); ok && text != "" {
			return []*richtext.Node{richtext.NewText(text)}
		}
	}
	return nil
}

func convertText(text string, marks []*Mark) *richtext.Node {
	out := make([]*richtext.Mark, 0, len(marks))
	for _, mark := range marks {
		if m := convertMark(mark); m != nil {
			out = append(out, m)
		}
	}
	return richtext.NewText(text, out...)
}

func convertMark(mark *Mark) *richtext.Mark {
	if mark == nil {
		return nil
	}
	switch mark.Type {
	case "strong":
		return richtext.NewMark(richtext.MarkBold)
	case "em":
		return richtext.NewMark(richtext.MarkItalic)
	case "underline":
		return richtext.NewMark(richtext.MarkUnderline)
	case "strike":
		return richtext.NewMark(richtext.MarkStrike)
	case "code":
		return richtext.NewMark(richtext.MarkCode)
	case "subsup":
		if kind, _ := mark.Attrs["type"].(string); kind == "sup" {
			return richtext.NewMark(richtext.MarkSuperscript)
		}
		return richtext.NewMark(richtext.MarkSubscript)
	case "textColor":
		color, _ := mark.Attrs["color"].(string)
		if color == "" {
			return nil
		}
		return richtext.NewMark(richtext.MarkStyled, richtext.Attr{Key: "style", Value: "color: " + color})
	case "backgroundColor":
		return richtext.NewMark(richtext.MarkHighlight)
	case "link":
		href, _ := mark.Attrs["href"].(string)
		link := richtext.LinkAttrs{Href: href, LinkType: richtext.LinkURL}
		if strings.HasPrefix(href, "mailto:") {
			link = richtext.LinkAttrs{Href: strings.TrimPrefix(href, "mailto:"), LinkType: richtext.LinkEmail}
		}
		if m, err := richtext.NewLink(link); err == nil {
			return m
		}
		return nil
	default:
		return nil
	}
}

// pick copies the named keys of an ADF attribute map into ordered attrs.
func pick(attrs map[string]interface{}, keys ...string) richtext.Attrs {
	var out richtext.Attrs
	for _, key := range keys {
		if v, ok := attrs[key]; ok {
			out = append(out, richtext.Attr{Key: key, Value: v})
		}
	}
	return out
}

// FromComment converts a go-atlassian comment/body node into an ADF Node.
// Attribute maps are copied so the result shares no state with the input.
func FromComment(node *models.CommentNodeScheme) *Node {
	if node == nil {
		return nil
	}

	adfNode := &Node{
		Type:    node.Type,
		Text:    node.Text,
		Version: node.Version,
		Attrs:   copyAttrs(node.Attrs),
	}

	for _, mark := range node.Marks {
		if mark == nil {
			continue
		}
		adfNode.Marks = append(adfNode.Marks, &Mark{
			Type:  mark.Type,
			Attrs: copyAttrs(mark.Attrs),
		})
	}

	for _, child := range node.Content {
		if childNode := FromComment(child); childNode != nil {
			adfNode.Content = append(adfNode.Content, childNode)
		}
	}

	return adfNode
}

func copyAttrs(attrs map[string]interface{}) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
