package tools

import (
	"context"
	"time"

	"system-info-mcp/internal/globals"
	"system-info-mcp/internal/health"
	"system-info-mcp/internal/middlewares"
	"system-info-mcp/internal/portowner"
	"system-info-mcp/internal/sysinfo"

	//
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MetricsCollector is satisfied by *sysinfo.Collector
type MetricsCollector interface {
	Time() sysinfo.TimeInfo
	Memory(ctx context.Context) (*sysinfo.MemoryInfo, error)
	CPU(ctx context.Context) (*sysinfo.CPUInfo, error)
	Disk(ctx context.Context) (*sysinfo.DiskInfo, error)
	Platform(ctx context.Context) (*sysinfo.PlatformInfo, error)
	Uptime(ctx context.Context) (time.Duration, error)
	System(ctx context.Context) (*sysinfo.SystemInfo, error)
}

// PortResolver is satisfied by *portowner.Resolver
type PortResolver interface {
	Resolve(ctx context.Context, port int) portowner.Match
}

type ToolsManagerDependencies struct {
	AppCtx *globals.ApplicationContext

	McpServer   *server.MCPServer
	Middlewares []middlewares.ToolMiddleware
	Collector   MetricsCollector
	Resolver    PortResolver
	Health      *health.Engine
}

type ToolsManager struct {
	dependencies ToolsManagerDependencies
	toolPrefix   string
}

func NewToolsManager(deps ToolsManagerDependencies) *ToolsManager {
	return &ToolsManager{
		dependencies: deps,
		toolPrefix:   deps.AppCtx.ToolPrefix,
	}
}

func (tm *ToolsManager) toolName(base string) string {
	return tm.toolPrefix + base
}

// addTool wraps handler with the configured middlewares, first one outermost
func (tm *ToolsManager) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	for i := len(tm.dependencies.Middlewares) - 1; i >= 0; i-- {
		handler = tm.dependencies.Middlewares[i](handler)
	}
	tm.dependencies.McpServer.AddTool(tool, handler)
}

func (tm *ToolsManager) AddTools() {

	// get_current_time
	tm.addTool(mcp.NewTool(tm.toolName("get_current_time"),
		mcp.WithDescription("Get the current time in the configured timezone (default Asia/Kolkata, IST) and in UTC, plus the Unix timestamp"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("get_current_time"), tm.collectTime))

	// get_memory_usage
	tm.addTool(mcp.NewTool(tm.toolName("get_memory_usage"),
		mcp.WithDescription("Get current system memory usage: total, available, used and free bytes and GB, and percentage used"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("get_memory_usage"), tm.collectMemory))

	// get_cpu_usage
	tm.addTool(mcp.NewTool(tm.toolName("get_cpu_usage"),
		mcp.WithDescription("Get current CPU usage percentage, logical core count, current frequency in MHz and 1/5/15 minute load averages"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("get_cpu_usage"), tm.collectCPU))

	// get_disk_usage
	tm.addTool(mcp.NewTool(tm.toolName("get_disk_usage"),
		mcp.WithDescription("Get disk usage for the root partition: total, used and free bytes and GB, and percentage used"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("get_disk_usage"), tm.collectDisk))

	// get_system_info
	tm.addTool(mcp.NewTool(tm.toolName("get_system_info"),
		mcp.WithDescription("Get comprehensive system information including time, memory, CPU, disk usage and platform details"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("get_system_info"), tm.collectSystem))

	// get_port_info
	tm.addTool(mcp.NewTool(tm.toolName("get_port_info"),
		mcp.WithDescription("Find the process using a given local port. Returns the PID and process name when found, a not_found status when nothing uses the port, or an error status when the connection table could not be read"),
		mcp.WithNumber("port",
			mcp.Required(),
			mcp.Description("Port number to look up (e.g. 8080)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.HandlePortInfo)

	// check_health
	tm.addTool(mcp.NewTool(tm.toolName("check_health"),
		mcp.WithDescription("Evaluate the configured health checks (memory, CPU and disk thresholds) against a fresh system snapshot and report which ones fail"),
		mcp.WithReadOnlyHintAnnotation(true),
	), tm.recordHandler(tm.toolName("check_health"), tm.collectHealth))
}
