package portowner

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	//
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

func listConnections(ctx context.Context) ([]net.ConnectionStat, error) {
	return net.ConnectionsWithContext(ctx, "inet")
}

func lookupProcessName(ctx context.Context, pid int) (string, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", err
	}
	return proc.NameWithContext(ctx)
}

// fromConnections picks the socket bound locally to port, preferring a listener
// over any other connection using the same local port.
func fromConnections(conns []net.ConnectionStat, port int) (Match, bool) {
	var candidate *net.ConnectionStat
	for i := range conns {
		conn := &conns[i]
		if int(conn.Laddr.Port) != port {
			continue
		}
		if conn.Status == "LISTEN" {
			candidate = conn
			break
		}
		if candidate == nil {
			candidate = conn
		}
	}

	if candidate == nil {
		return Match{}, false
	}

	match := Match{
		Port:         port,
		Source:       SourceNative,
		Protocol:     protocolName(*candidate),
		LocalAddress: formatAddr(candidate.Laddr),
	}
	if candidate.Raddr.IP != "" {
		match.ForeignAddress = formatAddr(candidate.Raddr)
	}
	if candidate.Status != "" && candidate.Status != "NONE" {
		match.State = candidate.Status
	}
	match.RawLine = strings.Join(strings.Fields(strings.Join([]string{
		match.Protocol, match.LocalAddress, match.ForeignAddress, match.State,
	}, " ")), " ")

	// Sockets owned by other users come back without a PID when not privileged
	if candidate.Pid <= 0 {
		match.Status = StatusPIDUndetermined
		match.Message = "socket found but its owning process is not visible"
		return match, true
	}

	pid := int(candidate.Pid)
	match.Status = StatusFound
	match.PID = &pid
	return match, true
}

func protocolName(conn net.ConnectionStat) string {
	proto := "tcp"
	if conn.Type == syscall.SOCK_DGRAM {
		proto = "udp"
	}
	if strings.Contains(conn.Laddr.IP, ":") {
		proto += "6"
	}
	return proto
}

func formatAddr(addr net.Addr) string {
	if strings.Contains(addr.IP, ":") {
		return fmt.Sprintf("[%s]:%d", addr.IP, addr.Port)
	}
	return fmt.Sprintf("%s:%d", addr.IP, addr.Port)
}
