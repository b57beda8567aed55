package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/athapong/richtext/pkg/imageurl"
	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterImageTool(s *server.MCPServer) {
	tool := mcp.NewTool("build_image_url",
		mcp.WithDescription("Build an image service URL with resize (/m/WIDTHxHEIGHT) and filter (/filters:...) segments, plus the matching img attributes."),
		mcp.WithString("src", mcp.Required(), mcp.Description("The original image URL")),
		mcp.WithNumber("width", mcp.Description("Target width in pixels")),
		mcp.WithNumber("height", mcp.Description("Target height in pixels")),
		mcp.WithString("loading", mcp.Description("Loading hint: lazy or eager")),
		mcp.WithString("class", mcp.Description("CSS class for the img element")),
		mcp.WithString("filters", mcp.Description(`JSON object of filters, e.g. {"blur":5,"quality":80,"grayscale":true,"rotate":90,"format":"webp","fill":"#fff","brightness":10}`)),
	)

	s.AddTool(tool, util.ErrorGuard(util.AdaptLegacyHandler(imageHandler)))
}

func imageHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	src, ok := arguments["src"].(string)
	if !ok || src == "" {
		return mcp.NewToolResultError("src must be a non-empty string"), nil
	}

	opts := &imageurl.Options{}
	if v, ok := arguments["width"].(float64); ok {
		opts.Width = int(v)
	}
	if v, ok := arguments["height"].(float64); ok {
		opts.Height = int(v)
	}
	opts.Loading, _ = arguments["loading"].(string)
	opts.Class, _ = arguments["class"].(string)

	if raw, ok := arguments["filters"].(string); ok && strings.TrimSpace(raw) != "" {
		var filters map[string]any
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("filters must be a JSON object: %v", err)), nil
		}
		opts.Filters = imageurl.ParseFilters(filters)
	}

	result := imageurl.Build(src, opts)

	var response strings.Builder
	response.WriteString(result.Src + "\n")
	for _, attr := range result.Attrs {
		response.WriteString(fmt.Sprintf("%s=%q\n", attr.Key, attr.Value))
	}
	return mcp.NewToolResultText(response.String()), nil
}
