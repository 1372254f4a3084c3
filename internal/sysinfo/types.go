package sysinfo

import "fmt"

// TimeInfo is the current time rendered in the configured zone and in UTC
type TimeInfo struct {
	CurrentTimeLocal string  `json:"current_time_local"`
	CurrentTimeUTC   string  `json:"current_time_utc"`
	Timezone         string  `json:"timezone"`
	Timestamp        float64 `json:"timestamp"`
}

// MemoryInfo is the virtual memory usage of the host
type MemoryInfo struct {
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	FreeBytes      uint64  `json:"free_bytes"`
	TotalGB        float64 `json:"total_gb"`
	AvailableGB    float64 `json:"available_gb"`
	UsedGB         float64 `json:"used_gb"`
	FreeGB         float64 `json:"free_gb"`
	PercentageUsed float64 `json:"percentage_used"`
}

// CPUInfo is the CPU usage sampled over the configured interval
type CPUInfo struct {
	CPUPercent     float64   `json:"cpu_percent"`
	CPUCount       int       `json:"cpu_count"`
	CPUFreqCurrent float64   `json:"cpu_freq_current"`
	LoadAverage    []float64 `json:"load_average"`
}

// DiskInfo is the usage of a single partition
type DiskInfo struct {
	Path           string  `json:"path"`
	TotalBytes     uint64  `json:"total_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	FreeBytes      uint64  `json:"free_bytes"`
	TotalGB        float64 `json:"total_gb"`
	UsedGB         float64 `json:"used_gb"`
	FreeGB         float64 `json:"free_gb"`
	PercentageUsed float64 `json:"percentage_used"`
}

// PlatformInfo describes the OS the server runs on
type PlatformInfo struct {
	System    string `json:"system"`
	Platform  string `json:"platform"`
	Release   string `json:"release"`
	Version   string `json:"version"`
	Machine   string `json:"machine"`
	Processor string `json:"processor"`
	GoVersion string `json:"go_version"`
	Hostname  string `json:"hostname"`
}

// Text renders the platform as "Key: value" lines
func (p PlatformInfo) Text() string {
	return fmt.Sprintf("System: %s\nPlatform: %s\nRelease: %s\nVersion: %s\nMachine: %s\nProcessor: %s\nGo Version: %s\nHostname: %s",
		p.System, p.Platform, p.Release, p.Version, p.Machine, p.Processor, p.GoVersion, p.Hostname)
}

// SystemInfo aggregates every reporter
type SystemInfo struct {
	TimeInfo     TimeInfo     `json:"time_info"`
	MemoryInfo   MemoryInfo   `json:"memory_info"`
	CPUInfo      CPUInfo      `json:"cpu_info"`
	DiskInfo     DiskInfo     `json:"disk_info"`
	PlatformInfo PlatformInfo `json:"platform_info"`
}
