package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestRichTextAuthoringHandler(t *testing.T) {
	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"topic": "release notes"}

	result, err := richTextAuthoringHandler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %#v", result.Messages[0].Content)
	}
	for _, want := range []string{"release notes", "a general audience", "unordered-list", "superscript", "render_richtext"} {
		if !strings.Contains(text.Text, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestRichTextAuthoringHandlerRequiresTopic(t *testing.T) {
	var req mcp.GetPromptRequest
	if _, err := richTextAuthoringHandler(context.Background(), req); err == nil {
		t.Error("expected an error without a topic")
	}
}
