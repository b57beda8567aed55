package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterCompareTool(s *server.MCPServer) {
	tool := mcp.NewTool("compare_richtext",
		mcp.WithDescription("Render two rich-text JSON documents and show a semantic diff of the results"),
		mcp.WithString("source", mcp.Required(), mcp.Description("The original rich-text JSON document")),
		mcp.WithString("target", mcp.Required(), mcp.Description("The changed rich-text JSON document")),
		mcp.WithString("format", mcp.Description("Format to compare in: text (default), markdown or html")),
	)

	s.AddTool(tool, util.ErrorGuard(compareHandler))
}

func compareHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	source, _ := arguments["source"].(string)
	target, _ := arguments["target"].(string)
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return mcp.NewToolResultError("source and target are required"), nil
	}

	format := extract.FormatText
	if name, ok := arguments["format"].(string); ok && name != "" {
		f, err := extract.ParseFormat(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	sourceDoc, err := renderDocument(ctx, []byte(source), "", format, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render source: %v", err)), nil
	}
	targetDoc, err := renderDocument(ctx, []byte(target), "", format, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render target: %v", err)), nil
	}

	var comparison strings.Builder
	comparison.WriteString(fmt.Sprintf("Comparing documents (%s)\n\n", format))
	if string(sourceDoc.Output) == string(targetDoc.Output) {
		comparison.WriteString("No differences found.\n")
		return mcp.NewToolResultText(comparison.String()), nil
	}
	comparison.WriteString(extract.Diff(string(sourceDoc.Output), string(targetDoc.Output)))

	return mcp.NewToolResultText(comparison.String()), nil
}
