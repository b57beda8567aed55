package tools

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/athapong/richtext/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolGroup is a set of tools enabled together through ENABLE_TOOLS
type ToolGroup struct {
	Name        string
	Description string
	Register    func(*server.MCPServer)
}

// Groups lists every tool group the server can expose
var Groups = []ToolGroup{
	{"render", "Render rich-text JSON to HTML, Markdown or text (render_richtext)", RegisterRenderTool},
	{"import", "Import ADF and Markdown into rich-text (render_adf, render_markdown)", RegisterImportTools},
	{"image", "Image service URL builder (build_image_url)", RegisterImageTool},
	{"compare", "Diff two rendered documents (compare_richtext)", RegisterCompareTool},
	{"outline", "Heading outline, links and word count (outline_richtext)", RegisterOutlineTool},
	{"fetch", "Fetch and render a rich-text field from a URL (fetch_richtext)", RegisterFetchTool},
}

// Enabled reports whether the named group is enabled by ENABLE_TOOLS. An
// empty ENABLE_TOOLS enables everything.
func Enabled(name string) bool {
	enableTools := os.Getenv("ENABLE_TOOLS")
	if enableTools == "" {
		return true
	}
	return slices.Contains(splitTools(enableTools), name)
}

func RegisterToolManagerTool(s *server.MCPServer) {
	tool := mcp.NewTool("tool_manager",
		mcp.WithDescription("Manage MCP tools - enable or disable tools"),
		mcp.WithString("action", mcp.Required(), mcp.Description("Action to perform: list, enable, disable")),
		mcp.WithString("tool_name", mcp.Description("Tool name to enable/disable")),
	)

	s.AddTool(tool, util.ErrorGuard(util.AdaptLegacyHandler(toolManagerHandler)))
}

func toolManagerHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	action, ok := arguments["action"].(string)
	if !ok {
		return mcp.NewToolResultError("action must be a string"), nil
	}

	enableTools := os.Getenv("ENABLE_TOOLS")
	toolList := splitTools(enableTools)

	switch action {
	case "list":
		var response strings.Builder
		response.WriteString("Available tools:\n")
		response.WriteString("- tool_manager (Tool management) [enabled]\n")
		for _, g := range Groups {
			status := "disabled"
			if Enabled(g.Name) {
				status = "enabled"
			}
			response.WriteString(fmt.Sprintf("- %s (%s) [%s]\n", g.Name, g.Description, status))
		}
		response.WriteString("\nCurrently enabled tools:\n")
		if enableTools == "" {
			response.WriteString("All tools are enabled (ENABLE_TOOLS is empty)\n")
		} else {
			for _, name := range toolList {
				response.WriteString(fmt.Sprintf("- %s\n", name))
			}
		}
		response.WriteString("\nChanges take effect when the server restarts.\n")
		return mcp.NewToolResultText(response.String()), nil

	case "enable", "disable":
		toolName, ok := arguments["tool_name"].(string)
		if !ok || toolName == "" {
			return mcp.NewToolResultError("tool_name is required for enable/disable actions"), nil
		}
		if !knownGroup(toolName) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown tool %q", toolName)), nil
		}

		if enableTools == "" {
			// everything is enabled; make the set explicit before changing it
			toolList = groupNames()
		}

		if action == "enable" {
			toolList = slices.DeleteFunc(toolList, func(s string) bool { return s == noTools })
			if !slices.Contains(toolList, toolName) {
				toolList = append(toolList, toolName)
			}
		} else {
			toolList = slices.DeleteFunc(toolList, func(s string) bool { return s == toolName || s == noTools })
			if len(toolList) == 0 {
				toolList = []string{noTools}
			}
		}

		os.Setenv("ENABLE_TOOLS", strings.Join(toolList, ","))

		return mcp.NewToolResultText(fmt.Sprintf("Successfully %sd tool: %s", action, toolName)), nil

	default:
		return mcp.NewToolResultError("Invalid action. Use 'list', 'enable', or 'disable'"), nil
	}
}

// noTools keeps ENABLE_TOOLS non-empty once every group is disabled
const noTools = "none"

func splitTools(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func knownGroup(name string) bool {
	return slices.ContainsFunc(Groups, func(g ToolGroup) bool { return g.Name == name })
}

func groupNames() []string {
	names := make([]string, 0, len(Groups))
	for _, g := range Groups {
		names = append(names, g.Name)
	}
	return names
}
