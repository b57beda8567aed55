package richtext

// NodeType identifies the kind of a node in the document tree
type NodeType string

const (
	TypeDocument       NodeType = "document"
	TypeHeading        NodeType = "heading"
	TypeParagraph      NodeType = "paragraph"
	TypeUnorderedList  NodeType = "unordered-list"
	TypeOrderedList    NodeType = "ordered-list"
	TypeListItem       NodeType = "list-item"
	TypeBlockquote     NodeType = "blockquote"
	TypeCodeBlock      NodeType = "code-block"
	TypeHorizontalRule NodeType = "horizontal-rule"
	TypeHardBreak      NodeType = "hard-break"
	TypeImage          NodeType = "image"
	TypeText           NodeType = "text"
)

// MarkType identifies an inline decoration applied to a text node
type MarkType string

const (
	MarkBold        MarkType = "bold"
	MarkItalic      MarkType = "italic"
	MarkUnderline   MarkType = "underline"
	MarkStrike      MarkType = "strike"
	MarkCode        MarkType = "code"
	MarkSuperscript MarkType = "superscript"
	MarkSubscript   MarkType = "subscript"
	MarkHighlight   MarkType = "highlight"
	MarkStyled      MarkType = "styled"
	MarkLink        MarkType = "link"
	MarkAnchor      MarkType = "anchor"
)

// nodeAliases maps the snake_case identifiers emitted by the editor's JSON
// serializer onto the canonical node types.
var nodeAliases = map[string]NodeType{
	"doc":             TypeDocument,
	"bullet_list":     TypeUnorderedList,
	"ordered_list":    TypeOrderedList,
	"list_item":       TypeListItem,
	"code_block":      TypeCodeBlock,
	"horizontal_rule": TypeHorizontalRule,
	"hard_break":      TypeHardBreak,
}

// ParseNodeType returns the canonical node type for s. Unrecognized values
// are returned as-is so the renderer can report them.
func ParseNodeType(s string) NodeType {
	if t, ok := nodeAliases[s]; ok {
		return t
	}
	return NodeType(s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NodeType) UnmarshalText(b []byte) error {
	*t = ParseNodeType(string(b))
	return nil
}

// NodeTypes returns every node type the renderer resolves.
func NodeTypes() []NodeType {
	return []NodeType{
		TypeDocument,
		TypeHeading,
		TypeParagraph,
		TypeUnorderedList,
		TypeOrderedList,
		TypeListItem,
		TypeBlockquote,
		TypeCodeBlock,
		TypeHorizontalRule,
		TypeHardBreak,
		TypeImage,
		TypeText,
	}
}

// MarkTypes returns every mark type the renderer resolves.
func MarkTypes() []MarkType {
	return []MarkType{
		MarkBold,
		MarkItalic,
		MarkUnderline,
		MarkStrike,
		MarkCode,
		MarkSuperscript,
		MarkSubscript,
		MarkHighlight,
		MarkStyled,
		MarkLink,
		MarkAnchor,
	}
}

// Node represents a block or text node of a rich-text document
type Node struct {
	Type    NodeType `json:"type"`
	Attrs   Attrs    `json:"attrs,omitempty"`
	Text    string   `json:"text,omitempty"`
	Marks   []*Mark  `json:"marks,omitempty"`
	Content []*Node  `json:"content,omitempty"`
}

// Mark represents an inline decoration of a text node
type Mark struct {
	Type  MarkType `json:"type"`
	Attrs Attrs    `json:"attrs,omitempty"`
}
