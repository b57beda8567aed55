package util

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestErrorGuardRecoversPanic(t *testing.T) {
	handler := ErrorGuard(AdaptLegacyHandler(func(map[string]interface{}) (*mcp.CallToolResult, error) {
		panic("boom")
	}))

	result, err := handler(context.Background(), callRequest("explode", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("expected an error result, got %#v", result)
	}
}

func TestAdaptLegacyHandlerPassesArguments(t *testing.T) {
	var got interface{}
	handler := AdaptLegacyHandler(func(args map[string]interface{}) (*mcp.CallToolResult, error) {
		got = args["key"]
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), callRequest("echo", map[string]interface{}{"key": "value"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}
	if got != "value" {
		t.Errorf("handler saw %v, want value", got)
	}
}
