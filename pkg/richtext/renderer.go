package richtext

import (
	"strconv"
	"strings"
	"sync"

	"github.com/athapong/richtext/pkg/imageurl"
	"github.com/sirupsen/logrus"
)

// Renderer turns document trees into HTML. A Renderer holds no per-call
// state and is safe for concurrent use.
type Renderer struct {
	diagnostics DiagnosticFunc
	observer    Observer
	escapeAttrs bool
	image       *imageurl.Options
}

// Option configures a Renderer
type Option func(*Renderer)

// WithDiagnostics sends diagnostics to fn instead of the default logger.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.diagnostics = fn
		}
	}
}

// WithLogger logs diagnostics to logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.diagnostics = LogDiagnostics(logger)
		}
	}
}

// WithObserver registers an observer for rendered nodes, marks and
// diagnostics.
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithAttributeEscaping controls whether attribute values are escaped.
// Attribute values are emitted verbatim by default because they are
// expected to come from a trusted content source.
func WithAttributeEscaping(enabled bool) Option {
	return func(r *Renderer) {
		r.escapeAttrs = enabled
	}
}

// WithImageOptions applies resize and filter options to every image node.
func WithImageOptions(opts imageurl.Options) Option {
	return func(r *Renderer) {
		r.image = &opts
	}
}

// New creates a Renderer. Without options diagnostics are logged as JSON
// to stderr.
func New(opts ...Option) *Renderer {
	r := &Renderer{observer: nopObserver{}}
	for _, opt := range opts {
		opt(r)
	}
	if r.diagnostics == nil {
		logger := logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		r.diagnostics = LogDiagnostics(logger)
	}
	return r
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return New()
})

// Render renders node with the default renderer.
func Render(node *Node) string {
	return defaultRenderer().Render(node)
}

// RenderFragment renders nodes with the default renderer.
func RenderFragment(nodes []*Node) string {
	return defaultRenderer().RenderFragment(nodes)
}

// Render converts node and its subtree into HTML. A nil node renders as ""
// and raises a diagnostic.
func (r *Renderer) Render(node *Node) string {
	return r.renderNode(node, "")
}

// RenderFragment renders each node in order and concatenates the results.
// A nil or empty sequence renders as "" and raises a diagnostic.
func (r *Renderer) RenderFragment(nodes []*Node) string {
	if len(nodes) == 0 {
		r.report(Diagnostic{Kind: DiagnosticNilInput, Message: "no nodes to render"})
		return ""
	}
	var b strings.Builder
	for i, node := range nodes {
		b.WriteString(r.renderNode(node, "["+strconv.Itoa(i)+"]"))
	}
	return b.String()
}

func (r *Renderer) renderNode(node *Node, path string) string {
	if node == nil {
		r.report(Diagnostic{Kind: DiagnosticNilInput, Path: path, Message: "nil node"})
		return ""
	}

	resolve := lookupNode(node.Type)
	if resolve == nil {
		r.report(Diagnostic{
			Kind:    DiagnosticUnknownNode,
			Type:    string(node.Type),
			Path:    path,
			Message: "no resolver for node type",
		})
		return ""
	}
	r.observer.ObserveNode(node.Type)

	// text is a leaf; any content it carries is ignored
	if node.Type == TypeText {
		return resolve(r, node, nil, path)
	}

	children := make([]string, len(node.Content))
	for i, child := range node.Content {
		children[i] = r.renderNode(child, childPath(path, "content", i))
	}
	return resolve(r, node, children, path)
}

// renderText escapes the text and folds the marks over it. Each mark wraps
// the result of the previous ones, so the first mark ends up innermost.
func (r *Renderer) renderText(node *Node, path string) string {
	out := escapeHTML(node.Text)
	for i, mark := range node.Marks {
		markPath := childPath(path, "marks", i)
		if mark == nil {
			r.report(Diagnostic{Kind: DiagnosticNilInput, Path: markPath, Message: "nil mark"})
			continue
		}
		resolve := lookupMark(mark.Type)
		if resolve == nil {
			r.report(Diagnostic{
				Kind:    DiagnosticUnknownMark,
				Type:    string(mark.Type),
				Path:    markPath,
				Message: "no resolver for mark type, mark skipped",
			})
			continue
		}
		r.observer.ObserveMark(mark.Type)
		out = resolve(r, mark, out, markPath)
	}
	return out
}

func (r *Renderer) report(d Diagnostic) {
	r.observer.ObserveDiagnostic(d)
	r.diagnostics(d)
}

func (r *Renderer) attrString(attrs Attrs) string {
	return attrs.serialize(r.escapeAttrs)
}

func childPath(parent, field string, i int) string {
	p := field + "[" + strconv.Itoa(i) + "]"
	if parent == "" {
		return p
	}
	return parent + "." + p
}
