package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/extract"
	"github.com/athapong/richtext/pkg/pipeline"
	"github.com/athapong/richtext/pkg/richtext"
	"github.com/athapong/richtext/services"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterRenderTool(s *server.MCPServer) {
	tool := mcp.NewTool("render_richtext",
		mcp.WithDescription("Render a rich-text JSON document (a tree of typed nodes with inline marks) to HTML, Markdown or plain text. Problems in the tree such as unknown node types are reported as diagnostics instead of failing the render."),
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("The rich-text JSON: a single node object or an array of nodes"),
		),
		mcp.WithString("path", mcp.Description("Optional gjson path selecting the rich-text field inside a larger payload (e.g. story.content.body)")),
		mcp.WithString("format", mcp.Description("Output format: html (default), markdown or text")),
		mcp.WithBoolean("escape_attrs", mcp.Description("Escape attribute values; use for untrusted content")),
	)

	s.AddTool(tool, util.ErrorGuard(renderHandler))
}

func renderHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	document, ok := arguments["document"].(string)
	if !ok || strings.TrimSpace(document) == "" {
		return mcp.NewToolResultError("document must be a non-empty string"), nil
	}
	path, _ := arguments["path"].(string)

	format, err := formatArg(arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := renderDocument(ctx, []byte(document), path, format, escapeArg(arguments))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render document: %v", err)), nil
	}

	return mcp.NewToolResultText(formatResult(string(doc.Output), doc.Diagnostics)), nil
}

func formatArg(arguments map[string]interface{}) (extract.Format, error) {
	name, _ := arguments["format"].(string)
	return extract.ParseFormat(name)
}

// escapeArg returns the escape_attrs override, or nil to keep the
// configured default.
func escapeArg(arguments map[string]interface{}) *bool {
	if v, ok := arguments["escape_attrs"].(bool); ok {
		return &v
	}
	return nil
}

// renderDocument runs a single document through a pipeline configured from
// the environment and converts the result to format.
func renderDocument(ctx context.Context, data []byte, path string, format extract.Format, escape *bool) (*pipeline.Document, error) {
	logger := services.DefaultLogger()
	opts := services.LoadRendererConfig().Options(logger)
	if escape != nil {
		opts = append(opts, richtext.WithAttributeEscaping(*escape))
	}

	p := pipeline.NewPipeline(
		pipeline.WithLogger(logger),
		pipeline.WithRendererOptions(opts...),
	)
	p.AddProcessor(pipeline.ConvertTo(format))

	doc := &pipeline.Document{Source: "mcp", Data: data, Path: path}
	if err := p.Process(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func formatResult(output string, diagnostics []richtext.Diagnostic) string {
	if len(diagnostics) == 0 {
		return output
	}

	var result strings.Builder
	result.WriteString(output)
	result.WriteString("\n\n---\nDiagnostics:\n")
	for _, d := range diagnostics {
		result.WriteString("- " + d.String() + "\n")
	}
	return result.String()
}
