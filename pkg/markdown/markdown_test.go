package markdown

import (
	"strings"
	"testing"

	"github.com/athapong/richtext/pkg/richtext"
)

func render(t *testing.T, source string) (*Document, string) {
	t.Helper()
	doc, err := Import([]byte(source))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	r := richtext.New(richtext.WithDiagnostics(richtext.DiscardDiagnostics))
	return doc, r.Render(doc.Root)
}

func TestImportDocument(t *testing.T) {
	source := "---\n" +
		"title: Notes\n" +
		"tags: [a, b]\n" +
		"team: docs\n" +
		"---\n" +
		"# Hello *world*\n\n" +
		"Some **bold** and `code`.\n\n" +
		"- one\n" +
		"- two\n\n" +
		"1. first\n"

	doc, got := render(t, source)
	want := `<div ><h1 level="1">Hello <em >world</em></h1>` +
		`<p >Some <strong >bold</strong> and <code >code</code>.</p>` +
		`<ul ><li >one</li><li >two</li></ul>` +
		`<ol ><li >first</li></ol></div>`
	if got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}

	if doc.Meta.Title != "Notes" {
		t.Errorf("Title = %q", doc.Meta.Title)
	}
	if strings.Join(doc.Meta.Tags, ",") != "a,b" {
		t.Errorf("Tags = %v", doc.Meta.Tags)
	}
	if doc.Meta.Custom["team"] != "docs" {
		t.Errorf("Custom = %v", doc.Meta.Custom)
	}
}

func TestImportBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "fenced code",
			source: "```go\nx := 1 < 2\n```\n",
			want:   `<div ><pre><code class="language-go">x := 1 &lt; 2</code></pre></div>`,
		},
		{
			name:   "link with title",
			source: "[site](https://example.com \"Home\")\n",
			want:   `<div ><p ><a linktype="url" title="Home" href="https://example.com">site</a></p></div>`,
		},
		{
			name:   "email autolink",
			source: "<a@b.com>\n",
			want:   `<div ><p ><a linktype="email" href="mailto:a@b.com">a@b.com</a></p></div>`,
		},
		{
			name:   "blockquote and rule",
			source: "> quoted\n\n---\n",
			want:   `<div ><blockquote ><p >quoted</p></blockquote><hr /></div>`,
		},
		{
			name:   "strikethrough",
			source: "~~gone~~\n",
			want:   `<div ><p ><s >gone</s></p></div>`,
		},
		{
			name:   "ordered list start",
			source: "3. three\n",
			want:   `<div ><ol start="3"><li >three</li></ol></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := render(t, tt.source)
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestImportDropsRawHTML(t *testing.T) {
	_, got := render(t, "<script>alert(1)</script>\n\ntext\n")
	if strings.Contains(got, "script") {
		t.Errorf("raw HTML leaked into output: %s", got)
	}
	if !strings.Contains(got, "<p >text</p>") {
		t.Errorf("expected paragraph, got %s", got)
	}
}

func TestDocumentTitleAndOutline(t *testing.T) {
	doc, _ := render(t, "## Sub\n\ntext\n\n### Deeper\n")
	if doc.Title() != "Sub" {
		t.Errorf("Title() = %q, want Sub", doc.Title())
	}
	outline := doc.Outline()
	if strings.Join(outline, "|") != "2:Sub|3:Deeper" {
		t.Errorf("Outline() = %v", outline)
	}
}
