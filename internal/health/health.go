// Package health evaluates configured CEL conditions against a metrics snapshot.
//
// Each condition sees the variables memory, cpu, disk, platform and time, holding the
// JSON form of the corresponding sysinfo record, e.g. `memory.percentage_used < 90.0`.
package health

import (
	"encoding/json"
	"fmt"

	//
	"system-info-mcp/api"
	"system-info-mcp/internal/sysinfo"

	//
	"github.com/google/cel-go/cel"
)

var snapshotVariables = []string{"memory", "cpu", "disk", "platform", "time"}

type compiledCheck struct {
	config  api.HealthCheckConfig
	program cel.Program
}

type Engine struct {
	checks []compiledCheck
}

type CheckResult struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Passed     bool   `json:"passed"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

type Report struct {
	Healthy bool          `json:"healthy"`
	Checks  []CheckResult `json:"checks"`
}

// NewEngine compiles every check up front so a broken expression fails at startup
func NewEngine(checks []api.HealthCheckConfig) (*Engine, error) {
	var options []cel.EnvOption
	for _, name := range snapshotVariables {
		options = append(options, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(options...)
	if err != nil {
		return nil, fmt.Errorf("failed creating CEL environment for health checks: %w", err)
	}

	engine := &Engine{}
	for _, check := range checks {
		ast, issues := env.Compile(check.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("health check %q: CEL compilation error: %s", check.Name, issues.Err())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("health check %q: CEL program error: %w", check.Name, err)
		}

		engine.checks = append(engine.checks, compiledCheck{config: check, program: prg})
	}

	return engine, nil
}

// Evaluate runs every check. A check that errors or yields a non-boolean counts as failed.
func (e *Engine) Evaluate(vars map[string]any) Report {
	report := Report{Healthy: true, Checks: make([]CheckResult, 0, len(e.checks))}

	for _, check := range e.checks {
		result := CheckResult{
			Name:       check.config.Name,
			Expression: check.config.Expression,
		}

		out, _, err := check.program.Eval(vars)
		switch {
		case err != nil:
			result.Error = err.Error()
		case out.Value() == true:
			result.Passed = true
		default:
			if _, isBool := out.Value().(bool); !isBool {
				result.Error = fmt.Sprintf("expression returned %v, not a boolean", out.Value())
			}
		}

		if !result.Passed {
			report.Healthy = false
			result.Message = check.config.Message
			if result.Message == "" {
				result.Message = fmt.Sprintf("%s check failed", check.config.Name)
			}
		}

		report.Checks = append(report.Checks, result)
	}

	return report
}

// Variables turns a snapshot into the CEL activation, keyed by the JSON field names
func Variables(info *sysinfo.SystemInfo) (map[string]any, error) {
	records := map[string]any{
		"memory":   info.MemoryInfo,
		"cpu":      info.CPUInfo,
		"disk":     info.DiskInfo,
		"platform": info.PlatformInfo,
		"time":     info.TimeInfo,
	}

	vars := make(map[string]any, len(records))
	for name, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed encoding %s record: %w", name, err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("failed decoding %s record: %w", name, err)
		}
		vars[name] = decoded
	}

	return vars, nil
}
