package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type collectFunc func(ctx context.Context, request mcp.CallToolRequest) (any, error)

// ErrorRecord is the body of every failed tool call
type ErrorRecord struct {
	Status  string `json:"status"`
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

// recordHandler is the single tool boundary: the record is returned as JSON on success,
// any failure becomes an ErrorRecord with IsError set. Nothing is returned as a Go error.
func (tm *ToolsManager) recordHandler(tool string, collect collectFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		record, err := collect(ctx, request)
		if err != nil {
			tm.dependencies.AppCtx.Logger.Error("tool failed", "tool", tool, "error", err.Error())
			return toolErrorRecord(tool, err.Error()), nil
		}
		return toolJSON(record, false), nil
	}
}

func toolErrorRecord(tool string, msg string) *mcp.CallToolResult {
	return toolJSON(ErrorRecord{Status: "error", Tool: tool, Message: msg}, true)
}

func toolJSON(record any, isError bool) *mcp.CallToolResult {
	jsonBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return toolError(fmt.Sprintf("failed to marshal result: %s", err.Error()))
	}
	if isError {
		return toolError(string(jsonBytes))
	}
	return toolSuccess(string(jsonBytes))
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
		IsError: true,
	}
}

func toolSuccess(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}

// intArgument reads an integral argument. JSON numbers arrive as float64; numeric strings are accepted too.
func intArgument(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s parameter is required", key)
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}
