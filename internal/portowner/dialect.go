package portowner

import (
	"strconv"
	"strings"
	"unicode"
)

// Dialect describes the column layout of one connection-listing command.
// Columns are whitespace separated token indexes; a negative PIDColumn counts from the end.
// When PIDHeaders is set, a header row naming one of them overrides PIDColumn.
type Dialect struct {
	Name            string
	Command         string
	Args            []string
	LocalAddrColumn int
	PIDColumn       int
	PIDHeaders      []string
}

var headerJoiner = strings.NewReplacer("Local Address", "Local-Address", "Foreign Address", "Foreign-Address")

var (
	// Proto  Local Address  Foreign Address  State  PID
	WindowsDialect = Dialect{
		Name:            "windows",
		Command:         "netstat",
		Args:            []string{"-ano"},
		LocalAddrColumn: 1,
		PIDColumn:       -1,
	}

	// Proto Recv-Q Send-Q Local Address Foreign Address State PID/Program name
	LinuxDialect = Dialect{
		Name:            "linux",
		Command:         "netstat",
		Args:            []string{"-tulnp"},
		LocalAddrColumn: 3,
		PIDColumn:       -1,
	}

	// Proto Recv-Q Send-Q Local Address Foreign Address (state) [rxbytes txbytes] rhiwat shiwat pid epid ...
	// macOS 12+ inserts the byte counters and newer releases print process:pid.
	DarwinDialect = Dialect{
		Name:            "darwin",
		Command:         "netstat",
		Args:            []string{"-anv", "-p", "tcp"},
		LocalAddrColumn: 3,
		PIDColumn:       8,
		PIDHeaders:      []string{"pid", "process:pid"},
	}
)

// DialectFor returns the dialect of the given GOOS. Unknown systems get the Linux layout.
func DialectFor(goos string) Dialect {
	switch goos {
	case "windows":
		return WindowsDialect
	case "darwin", "freebsd":
		return DarwinDialect
	default:
		return LinuxDialect
	}
}

// Find scans output for the first line whose local address carries port.
// The returned Match is only meaningful when ok is true; its Status is either
// found (PID parsed) or pid_undetermined.
func (d Dialect) Find(output string, port int) (match Match, ok bool) {
	pidColumn := d.PIDColumn
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if column, isHeader := d.headerPIDColumn(line); isHeader {
			pidColumn = column
			continue
		}

		fields := strings.Fields(line)
		if len(fields) <= d.LocalAddrColumn {
			continue
		}

		_, linePort, parsed := parseAddrPort(fields[d.LocalAddrColumn])
		if !parsed || linePort != port {
			continue
		}

		match = Match{
			Port:         port,
			Source:       SourceNetstat,
			Protocol:     strings.ToLower(fields[0]),
			LocalAddress: fields[d.LocalAddrColumn],
			RawLine:      line,
		}
		if len(fields) > d.LocalAddrColumn+1 {
			match.ForeignAddress = fields[d.LocalAddrColumn+1]
		}
		if len(fields) > d.LocalAddrColumn+2 && isStateWord(fields[d.LocalAddrColumn+2]) {
			match.State = fields[d.LocalAddrColumn+2]
		}

		pid, program, pidOk := d.pidFrom(fields, pidColumn)
		if !pidOk {
			match.Status = StatusPIDUndetermined
			match.Message = "matched a line but could not determine the PID"
			return match, true
		}

		match.Status = StatusFound
		match.PID = &pid
		match.Name = program
		return match, true
	}

	return Match{}, false
}

// headerPIDColumn reports the index of the PID column named by a header row.
// Two-word headers are joined first so header and data indexes line up.
func (d Dialect) headerPIDColumn(line string) (int, bool) {
	if len(d.PIDHeaders) == 0 {
		return 0, false
	}
	fields := strings.Fields(headerJoiner.Replace(line))
	if len(fields) == 0 || !strings.EqualFold(fields[0], "Proto") {
		return 0, false
	}
	for i, field := range fields {
		for _, header := range d.PIDHeaders {
			if strings.EqualFold(field, header) {
				return i, true
			}
		}
	}
	return 0, false
}

func (d Dialect) pidFrom(fields []string, column int) (pid int, program string, ok bool) {
	idx := column
	if idx < 0 {
		idx = len(fields) + idx
	}
	// The PID can never sit inside the address columns
	if idx <= d.LocalAddrColumn || idx >= len(fields) {
		return 0, "", false
	}
	return parsePIDToken(fields[idx])
}

// parsePIDToken accepts "1234", "1234/nginx" (netstat -p) and "nginx:1234" (newer BSD netstat -v).
func parsePIDToken(token string) (pid int, program string, ok bool) {
	if before, after, found := strings.Cut(token, "/"); found {
		token, program = before, after
	} else if idx := strings.LastIndex(token, ":"); idx != -1 {
		token, program = token[idx+1:], token[:idx]
	}

	pid, err := strconv.Atoi(token)
	if err != nil || pid < 0 {
		return 0, "", false
	}
	return pid, program, true
}

// parseAddrPort parses addresses like "0.0.0.0:80", "[::1]:8080", ":::22", "*:8080",
// "*.8080" and "127.0.0.1.8080"
func parseAddrPort(addr string) (string, int, bool) {
	if strings.HasPrefix(addr, "[") {
		end := strings.LastIndex(addr, "]")
		if end == -1 || end+2 > len(addr) {
			return "", 0, false
		}
		rest := addr[end+1:]
		if rest[0] != ':' && rest[0] != '.' {
			return "", 0, false
		}
		port, err := strconv.Atoi(rest[1:])
		if err != nil {
			return "", 0, false
		}
		return addr[1:end], port, true
	}

	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		port, err := strconv.Atoi(addr[idx+1:])
		if err == nil {
			return addr[:idx], port, true
		}
	}

	// BSD netstat separates the port with a dot
	if idx := strings.LastIndex(addr, "."); idx != -1 {
		port, err := strconv.Atoi(addr[idx+1:])
		if err == nil {
			return addr[:idx], port, true
		}
	}

	return "", 0, false
}

func isStateWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return true
}
