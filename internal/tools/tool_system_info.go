package tools

import (
	"context"

	//
	"github.com/mark3labs/mcp-go/mcp"
)

func (tm *ToolsManager) collectTime(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return tm.dependencies.Collector.Time(), nil
}

func (tm *ToolsManager) collectMemory(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return tm.dependencies.Collector.Memory(ctx)
}

func (tm *ToolsManager) collectCPU(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return tm.dependencies.Collector.CPU(ctx)
}

func (tm *ToolsManager) collectDisk(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return tm.dependencies.Collector.Disk(ctx)
}

func (tm *ToolsManager) collectSystem(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return tm.dependencies.Collector.System(ctx)
}
