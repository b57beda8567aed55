package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterOutlineTool(s *server.MCPServer) {
	tool := mcp.NewTool("outline_richtext",
		mcp.WithDescription("Render a rich-text JSON document and return its heading outline, links, word count and plain text as JSON"),
		mcp.WithString("document", mcp.Required(), mcp.Description("The rich-text JSON document")),
		mcp.WithString("path", mcp.Description("Optional gjson path selecting the rich-text field inside a larger payload")),
	)

	s.AddTool(tool, util.ErrorGuard(outlineHandler))
}

func outlineHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	document, _ := arguments["document"].(string)
	if strings.TrimSpace(document) == "" {
		return mcp.NewToolResultError("document must be a non-empty string"), nil
	}
	path, _ := arguments["path"].(string)

	doc, err := renderDocument(ctx, []byte(document), path, extract.FormatHTML, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render document: %v", err)), nil
	}

	summary, err := extract.Summarize(doc.HTML)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
