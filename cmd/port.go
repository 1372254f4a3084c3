package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	//
	"system-info-mcp/internal/globals"
	"system-info-mcp/internal/portowner"

	//
	"github.com/spf13/cobra"
)

var portCmd = &cobra.Command{
	Use:   "port <number>",
	Short: "Print the process owning a local port as JSON and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("port must be an integer, got %q", args[0])
		}

		appCtx, err := globals.NewApplicationContext(configPath)
		if err != nil {
			return fmt.Errorf("failed creating application context: %w", err)
		}

		resolver := portowner.NewResolver(appCtx.Config.PortResolver, appCtx.Logger)
		match := resolver.Resolve(cmd.Context(), port)

		jsonBytes, err := json.MarshalIndent(match, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal port info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))

		if match.Status == portowner.StatusError {
			return fmt.Errorf("port lookup failed: %s", match.Message)
		}
		return nil
	},
}
