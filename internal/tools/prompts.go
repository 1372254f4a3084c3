package tools

import (
	"context"

	//
	"github.com/mark3labs/mcp-go/mcp"
)

const systemStatusPromptText = `Please provide a comprehensive system status report including:
1. Current date and time in IST
2. Memory usage statistics
3. CPU usage and load
4. Disk space availability
5. System uptime and platform information

Format the response in a clear, readable manner with proper sections.`

const performanceCheckPromptText = `Check the current system performance and provide analysis on:
1. Is the memory usage within acceptable limits?
2. Is the CPU usage normal?
3. Is there sufficient disk space available?
4. Any performance concerns or recommendations?`

func (tm *ToolsManager) AddPrompts() {

	// system_status_prompt
	tm.dependencies.McpServer.AddPrompt(mcp.NewPrompt("system_status_prompt",
		mcp.WithPromptDescription("Generate a prompt for getting comprehensive system status"),
	), fixedPrompt("Comprehensive system status", systemStatusPromptText))

	// performance_check_prompt
	tm.dependencies.McpServer.AddPrompt(mcp.NewPrompt("performance_check_prompt",
		mcp.WithPromptDescription("Generate a prompt for performance monitoring"),
	), fixedPrompt("Performance check", performanceCheckPromptText))
}

func fixedPrompt(description string, text string) func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}
