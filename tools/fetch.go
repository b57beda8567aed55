package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/athapong/richtext/services"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxFetchSize caps the size of fetched documents
const maxFetchSize = 10 << 20

func RegisterFetchTool(s *server.MCPServer) {
	tool := mcp.NewTool("fetch_richtext",
		mcp.WithDescription("Fetches a JSON payload from an HTTP/HTTPS URL, such as a headless CMS content delivery API response, and renders the rich-text field selected by path."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The complete HTTP/HTTPS URL to fetch content from (e.g., https://api.example.com/stories/home)"),
		),
		mcp.WithString("path", mcp.Description("gjson path of the rich-text field in the response (e.g. story.content.body)")),
		mcp.WithString("format", mcp.Description("Output format: html (default), markdown or text")),
	)

	s.AddTool(tool, util.ErrorGuard(fetchHandler))
}

func fetchHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	url, ok := arguments["url"].(string)
	if !ok || !(strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
		return mcp.NewToolResultError("url must be an http or https URL"), nil
	}
	path, _ := arguments["path"].(string)

	format, err := formatArg(arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid request: %s", err)), nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := services.DefaultHttpClient().Do(req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch URL: %s", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mcp.NewToolResultError(fmt.Sprintf("unexpected status %s", resp.Status)), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read response body: %s", err)), nil
	}

	doc, err := renderDocument(ctx, body, path, format, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render document: %v", err)), nil
	}
	return mcp.NewToolResultText(formatResult(string(doc.Output), doc.Diagnostics)), nil
}
