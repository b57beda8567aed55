// Package richtext renders rich-text editor documents to HTML.
//
// A document is a tree of block nodes (document, heading, paragraph, lists,
// ...) whose leaves are text nodes. Text nodes carry an ordered list of
// marks (bold, italic, link, ...). Rendering is a bottom-up fold: children
// are rendered first and handed to the resolver of their parent as strings.
//
// # Basic Usage
//
//	nodes, err := richtext.Decode(data)
//	if err != nil {
//		return err
//	}
//	html := richtext.RenderFragment(nodes)
//
// Or with a configured renderer:
//
//	var diags richtext.Collector
//	r := richtext.New(richtext.WithDiagnostics(diags.Collect))
//	html := r.Render(node)
//
// # Marks
//
// Marks are applied in list order, each wrapping the previous result, so the
// first mark is the innermost element: marks [bold, italic] render as
// <em ><strong >text</strong></em>.
//
// # Security
//
// Text content is always escaped. Attribute values are emitted verbatim
// unless the renderer is built with WithAttributeEscaping(true); only enable
// pass-through for content coming from a trusted source.
//
// # Errors
//
// Rendering never fails. Unknown node or mark types, nil input and
// malformed attributes are reported to the diagnostic sink and the
// offending subtree renders as an empty string.
package richtext
