package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	//
	"system-info-mcp/api"

	//
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerName      = "system-info-mcp"
	DefaultServerVersion   = "0.1.0"
	DefaultLogLevel        = "info"
	DefaultTransport       = "stdio"
	DefaultHTTPHost        = ":8080"
	DefaultTimezone        = "Asia/Kolkata"
	DefaultCPUSample       = 1 * time.Second
	DefaultResolveStrategy = "auto"
	DefaultGreeting        = "Hello, {name}!"
)

// ReadFile reads the YAML config at filepath, expanding environment variables before parsing.
// An empty filepath yields the defaults.
func ReadFile(filepath string) (api.Configuration, error) {
	config := api.Configuration{}

	if filepath != "" {
		fileBytes, err := os.ReadFile(filepath)
		if err != nil {
			return config, fmt.Errorf("failed reading config file %q: %w", filepath, err)
		}

		fileBytes = []byte(os.ExpandEnv(string(fileBytes)))

		err = yaml.Unmarshal(fileBytes, &config)
		if err != nil {
			return config, fmt.Errorf("failed parsing config file %q: %w", filepath, err)
		}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return config, err
	}

	return config, nil
}

func applyDefaults(config *api.Configuration) {
	if config.Server.Name == "" {
		config.Server.Name = DefaultServerName
	}
	if config.Server.Version == "" {
		config.Server.Version = DefaultServerVersion
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = DefaultLogLevel
	}
	if config.Server.Transport.Type == "" {
		config.Server.Transport.Type = DefaultTransport
	}
	if config.Server.Transport.HTTP.Host == "" {
		config.Server.Transport.HTTP.Host = DefaultHTTPHost
	}

	if config.Time.Timezone == "" {
		config.Time.Timezone = DefaultTimezone
	}

	if config.CPU.SampleInterval <= 0 {
		config.CPU.SampleInterval = DefaultCPUSample
	}

	if config.Disk.Path == "" {
		config.Disk.Path = DefaultDiskPath()
	}

	if config.PortResolver.Strategy == "" {
		config.PortResolver.Strategy = DefaultResolveStrategy
	}

	if config.Greeting.Template == "" {
		config.Greeting.Template = DefaultGreeting
	}

	if config.Health.Checks == nil {
		config.Health.Checks = DefaultHealthChecks()
	}
}

func validate(config *api.Configuration) error {
	switch config.Server.Transport.Type {
	case "stdio", "http", "sse":
	default:
		return fmt.Errorf("unsupported transport %q (valid: stdio, http, sse)", config.Server.Transport.Type)
	}

	switch config.PortResolver.Strategy {
	case "auto", "native", "netstat":
	default:
		return fmt.Errorf("unsupported port resolver strategy %q (valid: auto, native, netstat)", config.PortResolver.Strategy)
	}

	for i, check := range config.Health.Checks {
		if check.Name == "" || check.Expression == "" {
			return fmt.Errorf("health check #%d needs both name and expression", i)
		}
	}

	return nil
}

// DefaultDiskPath returns the root partition of the running OS
func DefaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// DefaultHealthChecks mirrors the questions asked by the performance check prompt
func DefaultHealthChecks() []api.HealthCheckConfig {
	return []api.HealthCheckConfig{
		{
			Name:       "memory",
			Expression: "memory.percentage_used < 90.0",
			Message:    "memory usage is above 90%",
		},
		{
			Name:       "cpu",
			Expression: "cpu.cpu_percent < 95.0",
			Message:    "CPU usage is above 95%",
		},
		{
			Name:       "disk",
			Expression: "disk.percentage_used < 90.0",
			Message:    "root partition is more than 90% full",
		},
	}
}
