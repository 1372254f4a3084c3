package health

import (
	"testing"

	"system-info-mcp/api"
	"system-info-mcp/internal/config"
	"system-info-mcp/internal/sysinfo"
)

func snapshot(memoryPercent, cpuPercent, diskPercent float64) *sysinfo.SystemInfo {
	return &sysinfo.SystemInfo{
		MemoryInfo: sysinfo.MemoryInfo{PercentageUsed: memoryPercent, TotalBytes: 8 << 30},
		CPUInfo:    sysinfo.CPUInfo{CPUPercent: cpuPercent, CPUCount: 8, LoadAverage: []float64{0.5, 0.4, 0.3}},
		DiskInfo:   sysinfo.DiskInfo{PercentageUsed: diskPercent, Path: "/"},
		PlatformInfo: sysinfo.PlatformInfo{
			System: "linux",
		},
	}
}

func TestNewEngineRejectsBadExpression(t *testing.T) {
	_, err := NewEngine([]api.HealthCheckConfig{
		{Name: "broken", Expression: "memory.percentage_used <"},
	})
	if err == nil {
		t.Fatal("expected a compilation error")
	}

	_, err = NewEngine([]api.HealthCheckConfig{
		{Name: "unknown var", Expression: "gpu.temp < 80.0"},
	})
	if err == nil {
		t.Fatal("expected an undeclared reference error")
	}
}

func TestEvaluateDefaultChecks(t *testing.T) {
	engine, err := NewEngine(config.DefaultHealthChecks())
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}

	tests := []struct {
		name        string
		info        *sysinfo.SystemInfo
		wantHealthy bool
		wantFailed  []string
	}{
		{name: "all fine", info: snapshot(40, 10, 50), wantHealthy: true},
		{name: "memory pressure", info: snapshot(95, 10, 50), wantFailed: []string{"memory"}},
		{name: "everything hot", info: snapshot(99, 99, 99), wantFailed: []string{"memory", "cpu", "disk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, err := Variables(tt.info)
			if err != nil {
				t.Fatalf("Variables returned error: %v", err)
			}

			report := engine.Evaluate(vars)
			if report.Healthy != tt.wantHealthy {
				t.Errorf("Healthy = %v, want %v", report.Healthy, tt.wantHealthy)
			}

			var failed []string
			for _, check := range report.Checks {
				if !check.Passed {
					failed = append(failed, check.Name)
					if check.Message == "" {
						t.Errorf("failed check %q has no message", check.Name)
					}
				}
			}
			if len(failed) != len(tt.wantFailed) {
				t.Fatalf("failed checks = %v, want %v", failed, tt.wantFailed)
			}
			for i := range failed {
				if failed[i] != tt.wantFailed[i] {
					t.Errorf("failed checks = %v, want %v", failed, tt.wantFailed)
				}
			}
		})
	}
}

func TestEvaluateNonBooleanAndRuntimeErrors(t *testing.T) {
	engine, err := NewEngine([]api.HealthCheckConfig{
		{Name: "number", Expression: "memory.percentage_used"},
		{Name: "missing field", Expression: "memory.nope > 1.0"},
		{Name: "platform", Expression: "platform.system == 'linux'"},
	})
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}

	vars, err := Variables(snapshot(10, 10, 10))
	if err != nil {
		t.Fatal(err)
	}

	report := engine.Evaluate(vars)
	if report.Healthy {
		t.Error("Healthy = true, want false")
	}
	if report.Checks[0].Passed || report.Checks[0].Error == "" {
		t.Errorf("non-boolean check = %+v, want failed with error", report.Checks[0])
	}
	if report.Checks[1].Passed || report.Checks[1].Error == "" {
		t.Errorf("missing field check = %+v, want failed with error", report.Checks[1])
	}
	if !report.Checks[2].Passed {
		t.Errorf("platform check = %+v, want passed", report.Checks[2])
	}
}
