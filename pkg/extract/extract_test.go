package extract

import (
	"strings"
	"testing"
)

const rendered = `<div ><h2 level="2">Intro</h2><p >Hello <strong >world</strong> &amp; friends</p>` +
	`<ul ><li ><p >one</p></li><li ><p >two</p></li></ul>` +
	`<p >Mail <a linktype="email" href="mailto:a@b.com">me</a></p></div>`

func TestPlainText(t *testing.T) {
	got, err := PlainText(rendered)
	if err != nil {
		t.Fatalf("PlainText: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(got, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	want := []string{"Intro", "Hello world & friends", "one", "two", "Mail me"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("PlainText() = %q, want lines %q", got, want)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("PlainText() kept runs of blank lines: %q", got)
	}
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(rendered)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(summary.Headings) != 1 || summary.Headings[0] != (Heading{Level: 2, Text: "Intro"}) {
		t.Errorf("unexpected headings %#v", summary.Headings)
	}
	if len(summary.Links) != 1 || summary.Links[0] != (Link{Text: "me", Href: "mailto:a@b.com"}) {
		t.Errorf("unexpected links %#v", summary.Links)
	}
	if summary.Words != 9 {
		t.Errorf("Words = %d, want 9", summary.Words)
	}
}

func TestToMarkdown(t *testing.T) {
	got, err := ToMarkdown(`<p >Hello <strong >world</strong></p>`)
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if !strings.Contains(got, "**world**") {
		t.Errorf("expected bold markdown, got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatHTML},
		{input: "HTML", want: FormatHTML},
		{input: "md", want: FormatMarkdown},
		{input: " markdown ", want: FormatMarkdown},
		{input: "plain", want: FormatText},
		{input: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	html := "<p >a &amp; b</p>"
	if got, _ := Convert(html, FormatHTML); got != html {
		t.Errorf("html passthrough changed output: %q", got)
	}
	if got, _ := Convert(html, FormatText); got != "a & b" {
		t.Errorf("text conversion = %q", got)
	}
	if _, err := Convert(html, "rtf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDiff(t *testing.T) {
	got := Diff("<p >hello world</p>", "<p >hello there</p>")
	if !strings.Contains(got, "- world") || !strings.Contains(got, "+ there") {
		t.Errorf("unexpected diff:\n%s", got)
	}
	if strings.Contains(Diff("same", "same"), "+ ") {
		t.Error("identical inputs should not produce insertions")
	}
}
