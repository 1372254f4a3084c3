package middlewares

import (
	"context"
	"time"

	//
	"system-info-mcp/internal/globals"

	//
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolMiddleware wraps a tool handler
type ToolMiddleware func(next server.ToolHandlerFunc) server.ToolHandlerFunc

// ToolLogsMiddleware logs one line per tool call with its outcome and duration
func ToolLogsMiddleware(appCtx *globals.ApplicationContext) ToolMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, request)

			isError := err != nil || (result != nil && result.IsError)
			attrs := []any{
				"tool", request.Params.Name,
				"is_error", isError,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if requestID := RequestIDFromContext(ctx); requestID != "" {
				attrs = append(attrs, "request_id", requestID)
			}

			if isError {
				appCtx.Logger.Warn("tool call", attrs...)
			} else {
				appCtx.Logger.Info("tool call", attrs...)
			}
			return result, err
		}
	}
}
