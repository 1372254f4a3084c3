package portowner

type Status string

const (
	StatusFound           Status = "found"
	StatusNotFound        Status = "not_found"
	StatusPIDUndetermined Status = "pid_undetermined"
	StatusError           Status = "error"
)

type Strategy string

const (
	StrategyAuto    Strategy = "auto"
	StrategyNative  Strategy = "native"
	StrategyNetstat Strategy = "netstat"
)

const (
	SourceNative  = "native"
	SourceNetstat = "netstat"
)

// Match is the outcome of a single port lookup. PID and Name are only set when the
// owning process could be identified.
type Match struct {
	Port           int    `json:"port"`
	Status         Status `json:"status"`
	PID            *int   `json:"pid,omitempty"`
	Name           string `json:"name,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	LocalAddress   string `json:"local_address,omitempty"`
	ForeignAddress string `json:"foreign_address,omitempty"`
	State          string `json:"state,omitempty"`
	RawLine        string `json:"raw_line,omitempty"`
	Source         string `json:"source,omitempty"`
	Message        string `json:"message,omitempty"`
}

func notFound(port int, source string) Match {
	return Match{
		Port:    port,
		Status:  StatusNotFound,
		Source:  source,
		Message: "no process found for this port",
	}
}

func failed(port int, source string, err error) Match {
	return Match{
		Port:    port,
		Status:  StatusError,
		Source:  source,
		Message: err.Error(),
	}
}
