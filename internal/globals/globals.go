package globals

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"system-info-mcp/api"
	"system-info-mcp/internal/config"
)

type ApplicationContext struct {
	Context    context.Context
	Logger     *slog.Logger
	Config     *api.Configuration
	ToolPrefix string
}

var nonAlphanumRe = regexp.MustCompile(`[^a-z0-9]+`)

func SanitizeToolPrefix(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return ""
	}
	return s + "_"
}

// ParseLogLevel maps a config level name to slog. Unknown names fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewApplicationContext(configPath string) (*ApplicationContext, error) {

	appCtx := &ApplicationContext{
		Context: context.Background(),
		Logger:  slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	}

	configContent, err := config.ReadFile(configPath)
	if err != nil {
		return appCtx, err
	}
	appCtx.Config = &configContent

	// Logs go to stderr: stdout belongs to the stdio transport
	appCtx.Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(configContent.Server.LogLevel),
	}))

	if configContent.Server.PrefixTools {
		appCtx.ToolPrefix = SanitizeToolPrefix(configContent.Server.Name)
	}

	//
	return appCtx, nil
}
