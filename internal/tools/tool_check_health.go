package tools

import (
	"context"
	"errors"

	"system-info-mcp/internal/health"

	//
	"github.com/mark3labs/mcp-go/mcp"
)

func (tm *ToolsManager) collectHealth(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	if tm.dependencies.Health == nil {
		return nil, errors.New("no health checks configured")
	}

	info, err := tm.dependencies.Collector.System(ctx)
	if err != nil {
		return nil, err
	}

	vars, err := health.Variables(info)
	if err != nil {
		return nil, err
	}

	return tm.dependencies.Health.Evaluate(vars), nil
}
