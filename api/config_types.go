package api

import "time"

// ServerHTTPTransportConfig represents the HTTP listener used by the 'http' and 'sse' transports
type ServerHTTPTransportConfig struct {
	Host string `yaml:"host"`
}

// ServerTransportConfig represents the transport section of the server config
type ServerTransportConfig struct {
	Type string                    `yaml:"type"`
	HTTP ServerHTTPTransportConfig `yaml:"http"`
}

// ServerConfig represents the server section of the config
type ServerConfig struct {
	Name        string                `yaml:"name"`
	Version     string                `yaml:"version"`
	LogLevel    string                `yaml:"log_level"`
	PrefixTools bool                  `yaml:"prefix_tools"`
	Transport   ServerTransportConfig `yaml:"transport"`
}

// TimeConfig represents the time reporter section
type TimeConfig struct {
	Timezone string `yaml:"timezone"`
}

// CPUConfig represents the CPU reporter section
type CPUConfig struct {
	SampleInterval time.Duration `yaml:"sample_interval"`
}

// DiskConfig represents the disk reporter section
type DiskConfig struct {
	Path string `yaml:"path"`
}

// PortResolverConfig represents the port-owner resolver section.
// Command and Args override the OS dialect defaults when set.
type PortResolverConfig struct {
	Strategy string        `yaml:"strategy"`
	Command  string        `yaml:"command"`
	Args     []string      `yaml:"args"`
	Timeout  time.Duration `yaml:"timeout"`
}

// GreetingConfig represents the greeting resource section
type GreetingConfig struct {
	Template string `yaml:"template"`
}

// HealthCheckConfig is a single CEL condition evaluated against a metrics snapshot
type HealthCheckConfig struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
	Message    string `yaml:"message"`
}

// HealthConfig represents the health checks section
type HealthConfig struct {
	Checks []HealthCheckConfig `yaml:"checks"`
}

// Configuration represents the whole configuration file
type Configuration struct {
	Server       ServerConfig       `yaml:"server"`
	Time         TimeConfig         `yaml:"time"`
	CPU          CPUConfig          `yaml:"cpu"`
	Disk         DiskConfig         `yaml:"disk"`
	PortResolver PortResolverConfig `yaml:"port_resolver"`
	Greeting     GreetingConfig     `yaml:"greeting"`
	Health       HealthConfig       `yaml:"health"`
}
