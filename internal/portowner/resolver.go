// Package portowner maps a local port number to the process that owns it.
//
// The native strategy reads the OS socket table through gopsutil. The netstat
// strategy spawns the platform's connection-listing command and scans its text
// output with a per-OS Dialect. The auto strategy uses the native table and only
// falls back to netstat when the table cannot be read at all.
package portowner

import (
	"context"
	"log/slog"
	"runtime"

	//
	"system-info-mcp/api"

	//
	"github.com/shirou/gopsutil/v3/net"
)

type Resolver struct {
	strategy Strategy
	dialect  Dialect
	runner   Runner
	logger   *slog.Logger

	listConnections func(ctx context.Context) ([]net.ConnectionStat, error)
	lookupName      func(ctx context.Context, pid int) (string, error)
}

func NewResolver(config api.PortResolverConfig, logger *slog.Logger) *Resolver {
	dialect := DialectFor(runtime.GOOS)
	if config.Command != "" {
		dialect.Command = config.Command
	}
	if config.Args != nil {
		dialect.Args = config.Args
	}

	strategy := Strategy(config.Strategy)
	if strategy == "" {
		strategy = StrategyAuto
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		strategy:        strategy,
		dialect:         dialect,
		runner:          ExecRunner{Timeout: config.Timeout},
		logger:          logger,
		listConnections: listConnections,
		lookupName:      lookupProcessName,
	}
}

// Resolve never fails: every outcome, including command failures, is reported in the Match.
// The port is not range checked; impossible ports simply match nothing.
func (r *Resolver) Resolve(ctx context.Context, port int) Match {
	var match Match

	switch r.strategy {
	case StrategyNative:
		match = r.resolveNative(ctx, port)
	case StrategyNetstat:
		match = r.resolveNetstat(ctx, port)
	default:
		conns, err := r.listConnections(ctx)
		if err != nil {
			r.logger.Warn("native socket table unavailable, falling back to netstat",
				"port", port, "error", err.Error())
			match = r.resolveNetstat(ctx, port)
			break
		}
		match = r.matchConnections(conns, port)
	}

	r.attachName(ctx, &match)
	return match
}

func (r *Resolver) resolveNative(ctx context.Context, port int) Match {
	conns, err := r.listConnections(ctx)
	if err != nil {
		return failed(port, SourceNative, err)
	}
	return r.matchConnections(conns, port)
}

func (r *Resolver) matchConnections(conns []net.ConnectionStat, port int) Match {
	match, ok := fromConnections(conns, port)
	if !ok {
		return notFound(port, SourceNative)
	}
	return match
}

func (r *Resolver) resolveNetstat(ctx context.Context, port int) Match {
	output, err := r.runner.Run(ctx, r.dialect.Command, r.dialect.Args...)
	if err != nil {
		return failed(port, SourceNetstat, err)
	}

	match, ok := r.dialect.Find(output, port)
	if !ok {
		return notFound(port, SourceNetstat)
	}
	return match
}

// attachName prefers the process table name. The program name parsed from a
// "PID/name" column is kept when the table lookup fails.
func (r *Resolver) attachName(ctx context.Context, match *Match) {
	if match.Status != StatusFound || match.PID == nil {
		return
	}

	name, err := r.lookupName(ctx, *match.PID)
	if err != nil {
		r.logger.Debug("process name lookup failed", "pid", *match.PID, "error", err.Error())
		return
	}
	if name != "" {
		match.Name = name
	}
}
