// Package sysinfo reads host metrics through gopsutil and shapes them into flat records.
package sysinfo

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"
	_ "time/tzdata"

	//
	"system-info-mcp/api"

	//
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

const timeLayout = "2006-01-02 15:04:05 MST"

type Collector struct {
	location    *time.Location
	cpuInterval time.Duration
	diskPath    string
	now         func() time.Time
}

func NewCollector(config api.Configuration) (*Collector, error) {
	location, err := time.LoadLocation(config.Time.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed loading timezone %q: %w", config.Time.Timezone, err)
	}

	return &Collector{
		location:    location,
		cpuInterval: config.CPU.SampleInterval,
		diskPath:    config.Disk.Path,
		now:         time.Now,
	}, nil
}

func (c *Collector) Time() TimeInfo {
	utcNow := c.now().UTC()
	localNow := utcNow.In(c.location)

	return TimeInfo{
		CurrentTimeLocal: localNow.Format(timeLayout),
		CurrentTimeUTC:   utcNow.Format(timeLayout),
		Timezone:         fmt.Sprintf("%s (%s)", c.location.String(), localNow.Format("MST")),
		Timestamp:        float64(utcNow.UnixNano()) / float64(time.Second),
	}
}

func (c *Collector) Memory(ctx context.Context) (*MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed reading virtual memory: %w", err)
	}

	return &MemoryInfo{
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedBytes:      vm.Used,
		FreeBytes:      vm.Free,
		TotalGB:        BytesToGB(vm.Total),
		AvailableGB:    BytesToGB(vm.Available),
		UsedGB:         BytesToGB(vm.Used),
		FreeGB:         BytesToGB(vm.Free),
		PercentageUsed: clampPercent(round(vm.UsedPercent, 1)),
	}, nil
}

func (c *Collector) CPU(ctx context.Context) (*CPUInfo, error) {
	percents, err := cpu.PercentWithContext(ctx, c.cpuInterval, false)
	if err != nil {
		return nil, fmt.Errorf("failed sampling CPU usage: %w", err)
	}
	percent := 0.0
	if len(percents) > 0 {
		percent = percents[0]
	}

	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed counting CPUs: %w", err)
	}

	// Frequency is best effort, some virtualised hosts expose none
	freq := 0.0
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		freq = infos[0].Mhz
	}

	// Windows has no load average
	loadAverage := []float64{0, 0, 0}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		loadAverage = []float64{round(avg.Load1, 2), round(avg.Load5, 2), round(avg.Load15, 2)}
	}

	return &CPUInfo{
		CPUPercent:     clampPercent(round(percent, 1)),
		CPUCount:       count,
		CPUFreqCurrent: round(freq, 1),
		LoadAverage:    loadAverage,
	}, nil
}

func (c *Collector) Disk(ctx context.Context) (*DiskInfo, error) {
	usage, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed reading disk usage for %q: %w", c.diskPath, err)
	}

	percent := 0.0
	if usage.Total > 0 {
		percent = float64(usage.Used) / float64(usage.Total) * 100
	}

	return &DiskInfo{
		Path:           c.diskPath,
		TotalBytes:     usage.Total,
		UsedBytes:      usage.Used,
		FreeBytes:      usage.Free,
		TotalGB:        BytesToGB(usage.Total),
		UsedGB:         BytesToGB(usage.Used),
		FreeGB:         BytesToGB(usage.Free),
		PercentageUsed: clampPercent(round(percent, 1)),
	}, nil
}

func (c *Collector) Platform(ctx context.Context) (*PlatformInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed reading host info: %w", err)
	}

	processor := ""
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		processor = infos[0].ModelName
	}

	machine := info.KernelArch
	if machine == "" {
		machine = runtime.GOARCH
	}

	return &PlatformInfo{
		System:    info.OS,
		Platform:  strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Release:   info.KernelVersion,
		Version:   info.PlatformVersion,
		Machine:   machine,
		Processor: processor,
		GoVersion: runtime.Version(),
		Hostname:  info.Hostname,
	}, nil
}

// Uptime returns the time elapsed since boot
func (c *Collector) Uptime(ctx context.Context) (time.Duration, error) {
	bootTime, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed reading boot time: %w", err)
	}
	return c.now().Sub(time.Unix(int64(bootTime), 0)), nil
}

// System collects every reporter. The first failing reporter aborts the whole snapshot.
func (c *Collector) System(ctx context.Context) (*SystemInfo, error) {
	memory, err := c.Memory(ctx)
	if err != nil {
		return nil, err
	}
	cpuInfo, err := c.CPU(ctx)
	if err != nil {
		return nil, err
	}
	diskInfo, err := c.Disk(ctx)
	if err != nil {
		return nil, err
	}
	platform, err := c.Platform(ctx)
	if err != nil {
		return nil, err
	}

	return &SystemInfo{
		TimeInfo:     c.Time(),
		MemoryInfo:   *memory,
		CPUInfo:      *cpuInfo,
		DiskInfo:     *diskInfo,
		PlatformInfo: *platform,
	}, nil
}

// FormatUptime renders d as "System uptime: D days, H hours, M minutes"
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60
	return fmt.Sprintf("System uptime: %d days, %d hours, %d minutes", days, hours, minutes)
}

// BytesToGB converts bytes to GiB rounded to 2 decimals
func BytesToGB(b uint64) float64 {
	return round(float64(b)/(1024*1024*1024), 2)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
