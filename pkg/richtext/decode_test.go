package richtext

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		count   int
		wantErr bool
	}{
		{name: "single node", input: `{"type":"paragraph"}`, count: 1},
		{name: "fragment", input: ` [{"type":"paragraph"},{"type":"text","text":"x"}] `, count: 2},
		{name: "null", input: `null`, count: 0},
		{name: "empty", input: "  ", wantErr: true},
		{name: "scalar", input: `"paragraph"`, wantErr: true},
		{name: "malformed", input: `{"type":`, wantErr: true},
		{name: "attrs not an object", input: `{"type":"paragraph","attrs":[1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Decode([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(nodes) != tt.count {
				t.Errorf("got %d nodes, want %d", len(nodes), tt.count)
			}
		})
	}
}

func TestDecodeReader(t *testing.T) {
	nodes, err := DecodeReader(strings.NewReader(`{"type":"doc","content":[{"type":"paragraph"}]}`))
	if err != nil {
		t.Fatalf("DecodeReader: %v", err)
	}
	if nodes[0].Type != TypeDocument {
		t.Errorf("alias not normalized, got %q", nodes[0].Type)
	}
	if len(nodes[0].Content) != 1 || nodes[0].Content[0].Type != TypeParagraph {
		t.Errorf("unexpected content %+v", nodes[0].Content)
	}
}

func TestSelect(t *testing.T) {
	payload := []byte(`{"story":{"name":"Home","content":{"body":{"type":"doc","content":[]},"intro":"{\"type\":\"paragraph\"}","title":"plain"}}}`)

	got, err := Select(payload, "story.content.body")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if string(got) != `{"type":"doc","content":[]}` {
		t.Errorf("got %s", got)
	}

	got, err = Select(payload, "story.content.intro")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if string(got) != `{"type":"paragraph"}` {
		t.Errorf("string-encoded document not unwrapped, got %s", got)
	}

	got, err = Select(payload, "story.content.title")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if string(got) != `"plain"` {
		t.Errorf("plain string should be returned raw, got %s", got)
	}

	if _, err := Select(payload, "story.content.missing"); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := Select([]byte("{"), "a"); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if got, _ := Select(payload, ""); string(got) != string(payload) {
		t.Error("empty path should return input unchanged")
	}
}

func TestRenderJSONPackageLevel(t *testing.T) {
	got, err := RenderJSON([]byte(`[{"type":"paragraph","content":[{"type":"text","text":"a"}]},{"type":"paragraph","content":[{"type":"text","text":"b"}]}]`))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if got != "<p >a</p><p >b</p>" {
		t.Errorf("got %q", got)
	}

	if _, err := RenderJSON([]byte("nope")); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestAttrsRoundTrip(t *testing.T) {
	input := `{"level":2,"id":"intro","meta":{"x":1},"flag":false,"none":null}`

	var attrs Attrs
	if err := json.Unmarshal([]byte(input), &attrs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key
	}
	if strings.Join(keys, ",") != "level,id,meta,flag,none" {
		t.Errorf("key order lost: %v", keys)
	}
	if attrs.String("level") != "2" || attrs.String("meta") != `{"x":1}` || attrs.String("flag") != "false" {
		t.Errorf("unexpected formatted values: %v", attrs)
	}

	out, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal = %s, want %s", out, input)
	}
}

func TestAttrsSetWithout(t *testing.T) {
	attrs := Attrs{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}

	set := attrs.Set("a", "x").Set("c", "3")
	if set.serialize(false) != `a="x" b="2" c="3"` {
		t.Errorf("Set produced %q", set.serialize(false))
	}
	if attrs.String("a") != "1" {
		t.Error("Set must not modify the receiver")
	}

	if got := attrs.Without("a").serialize(false); got != `b="2"` {
		t.Errorf("Without produced %q", got)
	}
}
