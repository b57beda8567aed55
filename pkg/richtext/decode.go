package richtext

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Decode parses a JSON document holding either a single node or an array
// of nodes. JSON null decodes to an empty fragment.
func Decode(data []byte) ([]*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("decode: empty input")
	}

	switch trimmed[0] {
	case '[':
		var nodes []*Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, errors.Wrap(err, "decode fragment")
		}
		return nodes, nil
	case '{':
		var node Node
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return nil, errors.Wrap(err, "decode node")
		}
		return []*Node{&node}, nil
	default:
		if bytes.Equal(trimmed, []byte("null")) {
			return nil, nil
		}
		return nil, errors.Errorf("decode: expected object or array, got %q", truncate(trimmed, 16))
	}
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader) ([]*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return Decode(data)
}

// Select extracts the value at a gjson path, for instance
// "story.content.body" from a content delivery API response. An empty path
// returns data unchanged. Rich-text fields stored as JSON strings are
// unwrapped.
func Select(data []byte, path string) ([]byte, error) {
	if path == "" {
		return data, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("select: invalid JSON")
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, errors.Errorf("select: path %q not found", path)
	}
	if result.Type == gjson.String {
		inner := bytes.TrimSpace([]byte(result.Str))
		if len(inner) > 0 && (inner[0] == '{' || inner[0] == '[') && gjson.ValidBytes(inner) {
			return inner, nil
		}
	}
	return []byte(result.Raw), nil
}

// RenderJSON decodes data and renders it. Only malformed JSON is an error;
// tree shape problems are reported as diagnostics.
func (r *Renderer) RenderJSON(data []byte) (string, error) {
	nodes, err := Decode(data)
	if err != nil {
		return "", err
	}
	if len(nodes) == 1 {
		return r.Render(nodes[0]), nil
	}
	return r.RenderFragment(nodes), nil
}

// RenderJSON decodes and renders data with the default renderer.
func RenderJSON(data []byte) (string, error) {
	return defaultRenderer().RenderJSON(data)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
