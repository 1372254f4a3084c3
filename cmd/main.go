package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	//
	"system-info-mcp/internal/globals"
	"system-info-mcp/internal/health"
	"system-info-mcp/internal/middlewares"
	"system-info-mcp/internal/portowner"
	"system-info-mcp/internal/sysinfo"
	"system-info-mcp/internal/tools"

	//
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "system-info-mcp",
	Short: "MCP server exposing time, memory, CPU, disk, uptime, platform and port owner information",
	Long: `system-info-mcp serves OS metrics as MCP tools, resources and prompts.

Examples:
  system-info-mcp                          # serve over stdio with defaults
  system-info-mcp --config config.yaml     # serve with a config file
  system-info-mcp port 8080                # print the owner of port 8080 and exit`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server name and version",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := globals.NewApplicationContext(configPath)
		if err != nil {
			return fmt.Errorf("failed creating application context: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appCtx.Config.Server.Name, appCtx.Config.Server.Version)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (defaults are used when empty)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(portCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {

	// 0. Process the configuration
	appCtx, err := globals.NewApplicationContext(configPath)
	if err != nil {
		return fmt.Errorf("failed creating application context: %w", err)
	}

	// 1. Initialize middlewares that need it
	accessLogsMw := middlewares.NewAccessLogsMiddleware(middlewares.AccessLogsMiddlewareDependencies{
		AppCtx: appCtx,
	})

	// 2. Initialize collectors and the port resolver
	collector, err := sysinfo.NewCollector(*appCtx.Config)
	if err != nil {
		return fmt.Errorf("failed creating metrics collector: %w", err)
	}
	resolver := portowner.NewResolver(appCtx.Config.PortResolver, appCtx.Logger)

	// 3. Compile health checks
	healthEngine, err := health.NewEngine(appCtx.Config.Health.Checks)
	if err != nil {
		return fmt.Errorf("failed creating health engine: %w", err)
	}

	// 4. Create a new MCP server
	mcpServer := server.NewMCPServer(
		appCtx.Config.Server.Name,
		appCtx.Config.Server.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	// 5. Add system tools, resources and prompts to the MCP server
	tm := tools.NewToolsManager(tools.ToolsManagerDependencies{
		AppCtx: appCtx,

		McpServer: mcpServer,
		Middlewares: []middlewares.ToolMiddleware{
			middlewares.ToolLogsMiddleware(appCtx),
		},
		Collector: collector,
		Resolver:  resolver,
		Health:    healthEngine,
	})
	tm.AddTools()
	tm.AddResources()
	tm.AddPrompts()

	// 6. Wrap MCP server in a transport (stdio, HTTP, SSE)
	host := appCtx.Config.Server.Transport.HTTP.Host
	switch appCtx.Config.Server.Transport.Type {
	case "http":
		httpServer := server.NewStreamableHTTPServer(mcpServer,
			server.WithHeartbeatInterval(30*time.Second),
			server.WithStateLess(false),
			server.WithHTTPContextFunc(middlewares.HTTPContextFunc))

		mux := http.NewServeMux()
		mux.Handle("/mcp", accessLogsMw.Middleware(httpServer))
		mux.HandleFunc("/healthz", handleHealthz)

		appCtx.Logger.Info("starting StreamableHTTP server", "host", host)
		return http.ListenAndServe(host, mux)

	case "sse":
		sseServer := server.NewSSEServer(mcpServer,
			server.WithSSEContextFunc(middlewares.HTTPContextFunc))

		mux := http.NewServeMux()
		mux.Handle("/", accessLogsMw.Middleware(sseServer))
		mux.HandleFunc("/healthz", handleHealthz)

		appCtx.Logger.Info("starting SSE server", "host", host)
		return http.ListenAndServe(host, mux)

	default:
		appCtx.Logger.Info("starting stdio server")
		return server.ServeStdio(mcpServer)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
