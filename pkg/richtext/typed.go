package richtext

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidHeadingLevel = errors.New("heading level must be between 1 and 6")
	ErrUnknownLinkType     = errors.New("unknown link type")
	ErrMissingHref         = errors.New("link has no href")
	ErrMissingSrc          = errors.New("image has no src")
)

// DefaultHeadingLevel is used when a heading carries no usable level.
const DefaultHeadingLevel = 1

// HeadingAttrs is the typed view of a heading's attributes
type HeadingAttrs struct {
	Level int
}

// Heading reads the heading attributes of n. The returned level is always
// usable; the error reports when it had to fall back to DefaultHeadingLevel.
func (n *Node) Heading() (HeadingAttrs, error) {
	raw, ok := n.Attrs.Get("level")
	if !ok {
		return HeadingAttrs{Level: DefaultHeadingLevel}, errors.Wrap(ErrInvalidHeadingLevel, "level missing")
	}
	level, ok := toInt(raw)
	if !ok || level < 1 || level > 6 {
		return HeadingAttrs{Level: DefaultHeadingLevel}, errors.Wrapf(ErrInvalidHeadingLevel, "level %q", formatValue(raw))
	}
	return HeadingAttrs{Level: level}, nil
}

// LinkType tells the link resolver how to build an href
type LinkType string

const (
	LinkAsset LinkType = "asset"
	LinkURL   LinkType = "url"
	LinkEmail LinkType = "email"
	LinkStory LinkType = "story"
)

// LinkAttrs is the typed view of a link or anchor mark's attributes
type LinkAttrs struct {
	Href     string
	LinkType LinkType
	Target   string
}

// Link reads the link attributes of m.
func (m *Mark) Link() (LinkAttrs, error) {
	link := LinkAttrs{
		Href:     m.Attrs.String("href"),
		LinkType: LinkType(m.Attrs.String("linktype")),
		Target:   m.Attrs.String("target"),
	}
	return link, link.Validate()
}

// Validate checks the link type is known and an href is present.
func (l LinkAttrs) Validate() error {
	switch l.LinkType {
	case LinkAsset, LinkURL, LinkEmail, LinkStory:
	default:
		return errors.Wrapf(ErrUnknownLinkType, "%q", string(l.LinkType))
	}
	if l.Href == "" {
		return ErrMissingHref
	}
	return nil
}

// URL computes the href emitted for the link. Unknown link types yield "".
func (l LinkAttrs) URL() string {
	switch l.LinkType {
	case LinkAsset, LinkURL, LinkStory:
		return l.Href
	case LinkEmail:
		return "mailto:" + l.Href
	default:
		return ""
	}
}

// ImageAttrs is the typed view of an image node's attributes
type ImageAttrs struct {
	Src   string
	Alt   string
	Title string
}

// Image reads the image attributes of n.
func (n *Node) Image() (ImageAttrs, error) {
	img := ImageAttrs{
		Src:   n.Attrs.String("src"),
		Alt:   n.Attrs.String("alt"),
		Title: n.Attrs.String("title"),
	}
	if img.Src == "" {
		return img, ErrMissingSrc
	}
	return img, nil
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		i, err := strconv.Atoi(val.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		return i, err == nil
	default:
		return 0, false
	}
}

// NewDocument builds a document node.
func NewDocument(children ...*Node) *Node {
	return &Node{Type: TypeDocument, Content: children}
}

// NewParagraph builds a paragraph node.
func NewParagraph(children ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: children}
}

// NewHeading builds a heading node, rejecting levels outside 1..6.
func NewHeading(level int, children ...*Node) (*Node, error) {
	if level < 1 || level > 6 {
		return nil, errors.Wrapf(ErrInvalidHeadingLevel, "level %d", level)
	}
	return &Node{
		Type:    TypeHeading,
		Attrs:   Attrs{{Key: "level", Value: level}},
		Content: children,
	}, nil
}

// NewList builds an ordered or unordered list from the given items.
func NewList(ordered bool, items ...*Node) *Node {
	t := TypeUnorderedList
	if ordered {
		t = TypeOrderedList
	}
	return &Node{Type: t, Content: items}
}

// NewListItem builds a list item node.
func NewListItem(children ...*Node) *Node {
	return &Node{Type: TypeListItem, Content: children}
}

// NewText builds a text leaf decorated with marks, innermost first.
func NewText(text string, marks ...*Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// NewMark builds a mark of type t.
func NewMark(t MarkType, attrs ...Attr) *Mark {
	return &Mark{Type: t, Attrs: Attrs(attrs)}
}

// NewLink builds a link mark after validating its attributes.
func NewLink(link LinkAttrs) (*Mark, error) {
	if err := link.Validate(); err != nil {
		return nil, err
	}
	attrs := Attrs{
		{Key: "href", Value: link.Href},
		{Key: "linktype", Value: string(link.LinkType)},
	}
	if link.Target != "" {
		attrs = append(attrs, Attr{Key: "target", Value: link.Target})
	}
	return &Mark{Type: MarkLink, Attrs: attrs}, nil
}

// NewImage builds an image node.
func NewImage(img ImageAttrs) (*Node, error) {
	if img.Src == "" {
		return nil, ErrMissingSrc
	}
	attrs := Attrs{{Key: "src", Value: img.Src}}
	if img.Alt != "" {
		attrs = append(attrs, Attr{Key: "alt", Value: img.Alt})
	}
	if img.Title != "" {
		attrs = append(attrs, Attr{Key: "title", Value: img.Title})
	}
	return &Node{Type: TypeImage, Attrs: attrs}, nil
}
