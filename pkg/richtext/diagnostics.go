package richtext

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// DiagnosticKind classifies a recoverable rendering problem
type DiagnosticKind string

const (
	DiagnosticNilInput       DiagnosticKind = "nil-input"
	DiagnosticUnknownNode    DiagnosticKind = "unknown-node"
	DiagnosticUnknownMark    DiagnosticKind = "unknown-mark"
	DiagnosticMalformedAttrs DiagnosticKind = "malformed-attrs"
)

// Diagnostic describes a problem found while rendering. Rendering always
// continues after a diagnostic.
type Diagnostic struct {
	Kind    DiagnosticKind
	Type    string
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	path := d.Path
	if path == "" {
		path = "$"
	}
	if d.Type == "" {
		return fmt.Sprintf("%s at %s: %s", d.Kind, path, d.Message)
	}
	return fmt.Sprintf("%s %q at %s: %s", d.Kind, d.Type, path, d.Message)
}

// DiagnosticFunc receives diagnostics from a Renderer
type DiagnosticFunc func(Diagnostic)

// LogDiagnostics returns a sink writing diagnostics to logger at warn level.
func LogDiagnostics(logger *logrus.Logger) DiagnosticFunc {
	return func(d Diagnostic) {
		logger.WithFields(logrus.Fields{
			"kind":      d.Kind,
			"node_type": d.Type,
			"path":      d.Path,
		}).Warn(d.Message)
	}
}

// DiscardDiagnostics drops every diagnostic.
func DiscardDiagnostics(Diagnostic) {}

// Collector accumulates diagnostics. It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Collect records d.
func (c *Collector) Collect(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Tee fans a diagnostic out to several sinks.
func Tee(sinks ...DiagnosticFunc) DiagnosticFunc {
	return func(d Diagnostic) {
		for _, sink := range sinks {
			if sink != nil {
				sink(d)
			}
		}
	}
}

// Observer is notified of every node and mark the renderer resolves and of
// every diagnostic it raises.
type Observer interface {
	ObserveNode(t NodeType)
	ObserveMark(t MarkType)
	ObserveDiagnostic(d Diagnostic)
}

type nopObserver struct{}

func (nopObserver) ObserveNode(NodeType)         {}
func (nopObserver) ObserveMark(MarkType)         {}
func (nopObserver) ObserveDiagnostic(Diagnostic) {}
