package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/adf"
	"github.com/athapong/richtext/pkg/markdown"
	"github.com/athapong/richtext/pkg/richtext"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterImportTools(s *server.MCPServer) {
	adfTool := mcp.NewTool("render_adf",
		mcp.WithDescription("Convert an Atlassian Document Format (ADF) body, as stored by Jira and Confluence, into rich-text and render it. Tables, panels and other containers without a rich-text equivalent are flattened into their content."),
		mcp.WithString("adf", mcp.Required(), mcp.Description("The ADF JSON document")),
		mcp.WithString("format", mcp.Description("Output format: html (default), markdown, text or json (the converted rich-text tree)")),
	)
	s.AddTool(adfTool, util.ErrorGuard(adfHandler))

	markdownTool := mcp.NewTool("render_markdown",
		mcp.WithDescription("Import Markdown (with optional YAML front matter) into rich-text and render it. Raw HTML in the Markdown is dropped."),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("The Markdown source")),
		mcp.WithString("format", mcp.Description("Output format: html (default), markdown, text or json (the converted rich-text tree)")),
	)
	s.AddTool(markdownTool, util.ErrorGuard(markdownHandler))
}

func adfHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	body, ok := arguments["adf"].(string)
	if !ok || strings.TrimSpace(body) == "" {
		return mcp.NewToolResultError("adf must be a non-empty string"), nil
	}

	node, err := adf.Decode([]byte(body))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return renderImported(ctx, arguments, adf.Convert(node), "")
}

func markdownHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	source, ok := arguments["markdown"].(string)
	if !ok {
		return mcp.NewToolResultError("markdown must be a string"), nil
	}

	doc, err := markdown.Import([]byte(source))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to import markdown: %v", err)), nil
	}

	header := ""
	if title := doc.Title(); title != "" {
		header = fmt.Sprintf("Title: %s\n\n", title)
	}
	return renderImported(ctx, arguments, doc.Root, header)
}

// renderImported renders a converted tree. The "json" format returns the
// tree itself so it can be stored and rendered later.
func renderImported(ctx context.Context, arguments map[string]interface{}, root *richtext.Node, header string) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode document: %v", err)), nil
	}

	if name, _ := arguments["format"].(string); strings.EqualFold(strings.TrimSpace(name), "json") {
		return mcp.NewToolResultText(header + string(data)), nil
	}

	format, err := formatArg(arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := renderDocument(ctx, data, "", format, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render document: %v", err)), nil
	}
	return mcp.NewToolResultText(header + formatResult(string(doc.Output), doc.Diagnostics)), nil
}
