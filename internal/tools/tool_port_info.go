package tools

import (
	"context"

	"system-info-mcp/internal/portowner"

	//
	"github.com/mark3labs/mcp-go/mcp"
)

func (tm *ToolsManager) HandlePortInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	port, err := intArgument(args, "port")
	if err != nil {
		return toolErrorRecord(tm.toolName("get_port_info"), err.Error()), nil
	}

	match := tm.dependencies.Resolver.Resolve(ctx, port)

	tm.dependencies.AppCtx.Logger.Debug("port lookup finished",
		"port", port, "status", string(match.Status), "source", match.Source)

	// not_found and pid_undetermined are answers, only a failed lookup is an error
	return toolJSON(match, match.Status == portowner.StatusError), nil
}
