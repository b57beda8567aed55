package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/richtext"
)

func TestConvertAndWriteOutput(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(WithLogger(quietLogger()))
	p.AddProcessor(ConvertTo(extract.FormatText))
	p.AddProcessor(WriteOutput(dir, extract.FormatText.Extension()))

	doc := &Document{
		Source: "notes/intro.json",
		Data:   []byte(`{"type":"paragraph","content":[{"type":"text","text":"a & b"}]}`),
	}
	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := filepath.Join(dir, "intro.txt")
	if doc.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", doc.OutputPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "a & b" {
		t.Errorf("output = %q", data)
	}
}

func TestWriteOutputKeepsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(WithLogger(quietLogger()))
	p.AddProcessor(WriteOutput(dir, ".html"))

	docs := []*Document{
		{Source: "in/a/doc.json", Name: "a/doc", Data: []byte(`{"type":"paragraph","content":[{"type":"text","text":"AAA"}]}`)},
		{Source: "in/b/doc.json", Name: "b/doc", Data: []byte(`{"type":"paragraph","content":[{"type":"text","text":"BBB"}]}`)},
	}
	if err := p.BatchProcess(context.Background(), docs); err != nil {
		t.Fatalf("BatchProcess: %v", err)
	}

	for _, tt := range []struct{ name, want string }{
		{filepath.Join("a", "doc.html"), "<p >AAA</p>"},
		{filepath.Join("b", "doc.html"), "<p >BBB</p>"},
	} {
		data, err := os.ReadFile(filepath.Join(dir, tt.name))
		if err != nil {
			t.Fatalf("read %s: %v", tt.name, err)
		}
		if string(data) != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, data, tt.want)
		}
	}
	if docs[0].OutputPath == docs[1].OutputPath {
		t.Errorf("documents share output path %q", docs[0].OutputPath)
	}
}

func TestWriteOutputRejectsEscapingName(t *testing.T) {
	p := NewPipeline(WithLogger(quietLogger()))
	p.AddProcessor(WriteOutput(t.TempDir(), ".html"))

	doc := &Document{Name: "../outside", Data: []byte(`{"type":"paragraph"}`)}
	if err := p.Process(context.Background(), doc); err == nil {
		t.Error("expected an error for a name outside the output directory")
	}
}

func TestJSONManifestStore(t *testing.T) {
	docs := []*Document{
		{
			ID:         "1",
			Source:     "a.json",
			OutputPath: "out/a.html",
			Diagnostics: []richtext.Diagnostic{
				{Kind: richtext.DiagnosticUnknownNode, Type: "blink", Path: "content[0]", Message: "no resolver"},
			},
		},
		{ID: "2", Source: "b.json", Err: errors.New("decode node: unexpected EOF")},
	}
	manifest := NewManifest("html", docs)
	if manifest.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", manifest.Failed())
	}

	store := NewJSONManifestStore(filepath.Join(t.TempDir(), "nested", "manifest.json"))
	ctx := context.Background()
	if err := store.StoreManifest(ctx, manifest); err != nil {
		t.Fatalf("StoreManifest: %v", err)
	}

	loaded, err := store.LoadManifest(ctx)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if loaded.Format != "html" || len(loaded.Documents) != 2 {
		t.Fatalf("unexpected manifest %#v", loaded)
	}
	if got := loaded.Documents[0].Diagnostics; len(got) != 1 || got[0] != docs[0].Diagnostics[0].String() {
		t.Errorf("diagnostics = %v", got)
	}
	if loaded.Documents[1].Error == "" {
		t.Error("error not persisted")
	}
}
