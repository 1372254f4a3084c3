package portowner

import "testing"

const windowsOutput = `
Active Connections

  Proto  Local Address          Foreign Address        State           PID
  TCP    0.0.0.0:135            0.0.0.0:0              LISTENING       888
  TCP    0.0.0.0:8080           0.0.0.0:0              LISTENING       4242
  TCP    10.0.0.5:51000         93.184.216.34:80       ESTABLISHED     1500
  UDP    0.0.0.0:123            *:*                                    1320
`

const linuxOutput = `Active Internet connections (only servers)
Proto Recv-Q Send-Q Local Address           Foreign Address         State       PID/Program name
tcp        0      0 0.0.0.0:22              0.0.0.0:*               LISTEN      1234/sshd
tcp        0      0 127.0.0.1:5432          0.0.0.0:*               LISTEN      -
tcp6       0      0 :::8080                 :::*                    LISTEN      977/java
udp        0      0 0.0.0.0:68              0.0.0.0:*                           789/dhclient
`

const darwinOutput = `Active Internet connections (including servers)
Proto Recv-Q Send-Q  Local Address          Foreign Address        (state)      rhiwat  shiwat    pid   epid  state  options
tcp4       0      0  *.8080                 *.*                    LISTEN       131072  131072   6512      0 0x0100 0x00000006
tcp46      0      0  *.443                  *.*                    LISTEN       131072  131072    321      0 0x0100 0x00000006
`

const darwinByteCountersOutput = `Active Internet connections (including servers)
Proto Recv-Q Send-Q  Local Address          Foreign Address        (state)      rxbytes      txbytes  rhiwat  shiwat    pid   epid state options           gencnt    flags   flags1 usscnt rtncnt fltrs
tcp4       0      0  *.8080                 *.*                    LISTEN             0            0  131072  131072   4321      0 00100 00000006 000000000000a1b2 00000000 00000800      1      0 000001
`

const darwinProcessPIDOutput = `Active Internet connections (including servers)
Proto Recv-Q Send-Q  Local Address          Foreign Address        (state)      rxbytes      txbytes  rhiwat  shiwat          process:pid state options
tcp4       0      0  127.0.0.1.5432         *.*                    LISTEN             0            0  131072  131072    postgres:8765 00100 00000006
`

const darwinHeaderlessOutput = `tcp4       0      0  *.8080                 *.*                    LISTEN       131072  131072   6512      0 0x0100 0x00000006
`

func TestDialectFind(t *testing.T) {
	tests := []struct {
		name      string
		dialect   Dialect
		output    string
		port      int
		wantOK    bool
		wantState Status
		wantPID   int
		wantName  string
		wantProto string
		wantConn  string
	}{
		{
			name: "windows listener", dialect: WindowsDialect, output: windowsOutput, port: 8080,
			wantOK: true, wantState: StatusFound, wantPID: 4242, wantProto: "tcp", wantConn: "LISTENING",
		},
		{
			name: "windows udp without state", dialect: WindowsDialect, output: windowsOutput, port: 123,
			wantOK: true, wantState: StatusFound, wantPID: 1320, wantProto: "udp",
		},
		{
			name: "windows remote port is not a match", dialect: WindowsDialect, output: windowsOutput, port: 80,
			wantOK: false,
		},
		{
			name: "windows prefix port is not a match", dialect: WindowsDialect, output: windowsOutput, port: 808,
			wantOK: false,
		},
		{
			name: "linux pid with program", dialect: LinuxDialect, output: linuxOutput, port: 22,
			wantOK: true, wantState: StatusFound, wantPID: 1234, wantName: "sshd", wantProto: "tcp", wantConn: "LISTEN",
		},
		{
			name: "linux ipv6", dialect: LinuxDialect, output: linuxOutput, port: 8080,
			wantOK: true, wantState: StatusFound, wantPID: 977, wantName: "java", wantProto: "tcp6", wantConn: "LISTEN",
		},
		{
			name: "linux hidden pid", dialect: LinuxDialect, output: linuxOutput, port: 5432,
			wantOK: true, wantState: StatusPIDUndetermined, wantProto: "tcp", wantConn: "LISTEN",
		},
		{
			name: "linux udp", dialect: LinuxDialect, output: linuxOutput, port: 68,
			wantOK: true, wantState: StatusFound, wantPID: 789, wantName: "dhclient", wantProto: "udp",
		},
		{
			name: "darwin dotted address", dialect: DarwinDialect, output: darwinOutput, port: 8080,
			wantOK: true, wantState: StatusFound, wantPID: 6512, wantProto: "tcp4", wantConn: "LISTEN",
		},
		{
			name: "darwin second line", dialect: DarwinDialect, output: darwinOutput, port: 443,
			wantOK: true, wantState: StatusFound, wantPID: 321, wantProto: "tcp46", wantConn: "LISTEN",
		},
		{
			name: "darwin byte counters shift the pid column", dialect: DarwinDialect, output: darwinByteCountersOutput, port: 8080,
			wantOK: true, wantState: StatusFound, wantPID: 4321, wantProto: "tcp4", wantConn: "LISTEN",
		},
		{
			name: "darwin process:pid column", dialect: DarwinDialect, output: darwinProcessPIDOutput, port: 5432,
			wantOK: true, wantState: StatusFound, wantPID: 8765, wantName: "postgres", wantProto: "tcp4", wantConn: "LISTEN",
		},
		{
			name: "darwin without header uses default column", dialect: DarwinDialect, output: darwinHeaderlessOutput, port: 8080,
			wantOK: true, wantState: StatusFound, wantPID: 6512, wantProto: "tcp4", wantConn: "LISTEN",
		},
		{
			name: "negative port", dialect: LinuxDialect, output: linuxOutput, port: -22,
			wantOK: false,
		},
		{
			name: "out of range port", dialect: LinuxDialect, output: linuxOutput, port: 70000,
			wantOK: false,
		},
		{
			name: "empty output", dialect: LinuxDialect, output: "", port: 22,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := tt.dialect.Find(tt.output, tt.port)
			if ok != tt.wantOK {
				t.Fatalf("Find ok = %v, want %v (match %+v)", ok, tt.wantOK, match)
			}
			if !ok {
				return
			}

			if match.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", match.Status, tt.wantState)
			}
			if match.Port != tt.port {
				t.Errorf("Port = %d, want %d", match.Port, tt.port)
			}
			if match.RawLine == "" {
				t.Error("RawLine is empty")
			}
			if match.Protocol != tt.wantProto {
				t.Errorf("Protocol = %q, want %q", match.Protocol, tt.wantProto)
			}
			if match.State != tt.wantConn {
				t.Errorf("State = %q, want %q", match.State, tt.wantConn)
			}
			if match.Source != SourceNetstat {
				t.Errorf("Source = %q, want %q", match.Source, SourceNetstat)
			}

			if tt.wantState != StatusFound {
				if match.PID != nil {
					t.Errorf("PID = %d, want none", *match.PID)
				}
				return
			}
			if match.PID == nil || *match.PID != tt.wantPID {
				t.Errorf("PID = %v, want %d", match.PID, tt.wantPID)
			}
			if match.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", match.Name, tt.wantName)
			}
		})
	}
}

func TestParsePIDToken(t *testing.T) {
	tests := []struct {
		token   string
		pid     int
		program string
		ok      bool
	}{
		{token: "888", pid: 888, ok: true},
		{token: "1234/sshd", pid: 1234, program: "sshd", ok: true},
		{token: "launchd:1", pid: 1, program: "launchd", ok: true},
		{token: "-", ok: false},
		{token: "LISTEN", ok: false},
		{token: "-5", ok: false},
	}

	for _, tt := range tests {
		pid, program, ok := parsePIDToken(tt.token)
		if ok != tt.ok || pid != tt.pid || program != tt.program {
			t.Errorf("parsePIDToken(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.token, pid, program, ok, tt.pid, tt.program, tt.ok)
		}
	}
}

func TestParseAddrPort(t *testing.T) {
	tests := []struct {
		addr string
		host string
		port int
		ok   bool
	}{
		{addr: "0.0.0.0:80", host: "0.0.0.0", port: 80, ok: true},
		{addr: "[::1]:8080", host: "::1", port: 8080, ok: true},
		{addr: ":::22", host: "::", port: 22, ok: true},
		{addr: "*:8080", host: "*", port: 8080, ok: true},
		{addr: "*.8080", host: "*", port: 8080, ok: true},
		{addr: "127.0.0.1.8080", host: "127.0.0.1", port: 8080, ok: true},
		{addr: "0.0.0.0:*", ok: false},
		{addr: "*.*", ok: false},
		{addr: "Local", ok: false},
		{addr: "[::1]", ok: false},
	}

	for _, tt := range tests {
		host, port, ok := parseAddrPort(tt.addr)
		if ok != tt.ok || (ok && (host != tt.host || port != tt.port)) {
			t.Errorf("parseAddrPort(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.addr, host, port, ok, tt.host, tt.port, tt.ok)
		}
	}
}

func TestDialectFor(t *testing.T) {
	if d := DialectFor("windows"); d.Name != "windows" || d.Args[0] != "-ano" {
		t.Errorf("DialectFor(windows) = %+v", d)
	}
	if d := DialectFor("darwin"); d.Name != "darwin" {
		t.Errorf("DialectFor(darwin) = %+v", d)
	}
	if d := DialectFor("plan9"); d.Name != "linux" {
		t.Errorf("DialectFor(plan9) = %+v, want linux layout", d)
	}
}
