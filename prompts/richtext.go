package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/richtext"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterRichTextPrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("richtext_authoring",
		mcp.WithPromptDescription("Write content as a rich-text JSON document that render_richtext can render"),
		mcp.WithArgument("topic", mcp.ArgumentDescription("What the document should be about"), mcp.RequiredArgument()),
		mcp.WithArgument("audience", mcp.ArgumentDescription("Who will read the document")),
	)
	s.AddPrompt(prompt, richTextAuthoringHandler)
}

func richTextAuthoringHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := request.Params.Arguments["topic"]
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	audience := request.Params.Arguments["audience"]
	if audience == "" {
		audience = "a general audience"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Rich-text document about %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: authoringInstructions(topic, audience),
				},
			},
		},
	}, nil
}

func authoringInstructions(topic, audience string) string {
	nodes := make([]string, 0, len(richtext.NodeTypes()))
	for _, t := range richtext.NodeTypes() {
		nodes = append(nodes, string(t))
	}
	marks := make([]string, 0, len(richtext.MarkTypes()))
	for _, t := range richtext.MarkTypes() {
		marks = append(marks, string(t))
	}

	return fmt.Sprintf(`Write a document about %s for %s.

Answer with a single JSON object: a "document" node whose "content" holds block nodes.
Every node has a "type" and optional "attrs", "content", "text" and "marks".

Node types: %s
Mark types: %s

Rules:
- headings need attrs {"level": 1-6}
- text lives only in "text" nodes; decorate it with marks, innermost first
- links use the "link" mark with attrs {"href": "...", "linktype": "url" | "email" | "asset" | "story"}
- images need attrs {"src": "..."} and should have an "alt"

Then call render_richtext with the JSON to check it renders without diagnostics.`,
		topic, audience, strings.Join(nodes, ", "), strings.Join(marks, ", "))
}
