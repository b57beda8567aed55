package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/athapong/richtext/pkg/richtext"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestProcess(t *testing.T) {
	p := NewPipeline(WithLogger(quietLogger()))
	doc := &Document{
		Source: "home.json",
		Data:   []byte(`{"story":{"content":{"body":{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]},{"type":"blink"}]}}}}`),
		Path:   "story.content.body",
	}

	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if doc.HTML != "<div ><p >hi</p></div>" {
		t.Errorf("HTML = %q", doc.HTML)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Kind != richtext.DiagnosticUnknownNode {
		t.Errorf("unexpected diagnostics %v", doc.Diagnostics)
	}
	if doc.RenderedAt.IsZero() {
		t.Error("RenderedAt not set")
	}
}

func TestProcessorsRunInOrder(t *testing.T) {
	p := NewPipeline(WithLogger(quietLogger()))
	p.AddProcessor(ProcessorFunc(func(_ context.Context, doc *Document) error {
		doc.Output = []byte(strings.ToUpper(doc.HTML))
		return nil
	}))
	p.AddProcessor(ProcessorFunc(func(_ context.Context, doc *Document) error {
		doc.Output = append(doc.Output, '!')
		return nil
	}))

	doc := &Document{ID: "fixed", Data: []byte(`{"type":"text","text":"x"}`)}
	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if doc.ID != "fixed" {
		t.Errorf("existing ID replaced with %q", doc.ID)
	}
	if string(doc.Output) != "X!" {
		t.Errorf("Output = %q, want %q", doc.Output, "X!")
	}
}

func TestBatchProcess(t *testing.T) {
	p := NewPipeline(WithLogger(quietLogger()), WithBatchSize(3))

	docs := make([]*Document, 0, 8)
	for i := 0; i < 7; i++ {
		docs = append(docs, &Document{
			Data: []byte(fmt.Sprintf(`{"type":"paragraph","content":[{"type":"text","text":"doc %d"}]}`, i)),
		})
	}
	broken := &Document{Source: "broken.json", Data: []byte(`{"type":`)}
	docs = append(docs, broken)

	err := p.BatchProcess(context.Background(), docs)
	if err == nil {
		t.Fatal("expected an error for the broken document")
	}
	if !strings.Contains(err.Error(), "1 of 8") {
		t.Errorf("unexpected error %v", err)
	}
	if broken.Err == nil {
		t.Error("broken document should carry its error")
	}

	for i, doc := range docs[:7] {
		want := fmt.Sprintf("<p >doc %d</p>", i)
		if doc.HTML != want {
			t.Errorf("doc %d HTML = %q, want %q", i, doc.HTML, want)
		}
		if doc.Err != nil {
			t.Errorf("doc %d unexpected error %v", i, doc.Err)
		}
	}
}

func TestBatchProcessCancelled(t *testing.T) {
	p := NewPipeline(WithLogger(quietLogger()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.BatchProcess(ctx, []*Document{{Data: []byte(`{"type":"paragraph"}`)}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRendererOptionsApplied(t *testing.T) {
	p := NewPipeline(
		WithLogger(quietLogger()),
		WithRendererOptions(richtext.WithAttributeEscaping(true)),
	)
	doc := &Document{Data: []byte(`{"type":"paragraph","attrs":{"title":"a<b"}}`)}
	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if doc.HTML != `<p title="a&lt;b"></p>` {
		t.Errorf("HTML = %q", doc.HTML)
	}
}
