package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"system-info-mcp/internal/sysinfo"

	//
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	platformURI        = "system://platform"
	uptimeURI          = "system://uptime"
	greetingURIPrefix  = "greeting://"
	greetingURIPattern = greetingURIPrefix + "{+name}"
)

func (tm *ToolsManager) AddResources() {

	// system://platform
	tm.dependencies.McpServer.AddResource(mcp.NewResource(platformURI, "Platform",
		mcp.WithResourceDescription("Platform and operating system information"),
		mcp.WithMIMEType("text/plain"),
	), tm.HandlePlatformResource)

	// system://uptime
	tm.dependencies.McpServer.AddResource(mcp.NewResource(uptimeURI, "Uptime",
		mcp.WithResourceDescription("Human readable time elapsed since the system booted"),
		mcp.WithMIMEType("text/plain"),
	), tm.HandleUptimeResource)

	// greeting://{+name}, the name may contain reserved URI characters
	tm.dependencies.McpServer.AddResourceTemplate(mcp.NewResourceTemplate(greetingURIPattern, "Greeting",
		mcp.WithTemplateDescription("Get a personalized greeting"),
		mcp.WithTemplateMIMEType("text/plain"),
	), tm.HandleGreetingResource)
}

func (tm *ToolsManager) HandlePlatformResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	platform, err := tm.dependencies.Collector.Platform(ctx)
	if err != nil {
		tm.dependencies.AppCtx.Logger.Error("platform resource failed", "error", err.Error())
		return textResource(platformURI, fmt.Sprintf("Unable to get platform info: %s", err.Error())), nil
	}
	return textResource(platformURI, platform.Text()), nil
}

func (tm *ToolsManager) HandleUptimeResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uptime, err := tm.dependencies.Collector.Uptime(ctx)
	if err != nil {
		tm.dependencies.AppCtx.Logger.Error("uptime resource failed", "error", err.Error())
		return textResource(uptimeURI, fmt.Sprintf("Unable to get uptime: %s", err.Error())), nil
	}
	return textResource(uptimeURI, sysinfo.FormatUptime(uptime)), nil
}

func (tm *ToolsManager) HandleGreetingResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name := greetingName(request)
	return textResource(request.Params.URI, Greeting(tm.dependencies.AppCtx.Config.Greeting.Template, name)), nil
}

// Greeting fills the {name} placeholder. The name is inserted verbatim and never re-expanded.
func Greeting(template string, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

// greetingName prefers the variable matched by the runtime and falls back to the URI itself
func greetingName(request mcp.ReadResourceRequest) string {
	switch v := request.Params.Arguments["name"].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return strings.Join(v, ",")
		}
	}

	raw := strings.TrimPrefix(request.Params.URI, greetingURIPrefix)
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func textResource(uri string, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}
}
