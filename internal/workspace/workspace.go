package workspace

// Phase is the server-reported lifecycle phase of a workspace. The control
// plane is authoritative; the client never computes a phase on its own.
type Phase string

const (
	PhaseNotFound    Phase = "not_found"
	PhaseStarting    Phase = "starting"
	PhaseReady       Phase = "ready"
	PhaseTerminating Phase = "terminating"
	PhaseUnknown     Phase = "unknown"
)

// ParsePhase maps a wire phase string onto a known Phase. Missing or
// unrecognized values degrade to PhaseUnknown instead of failing the call.
func ParsePhase(s string) Phase {
	switch Phase(s) {
	case PhaseNotFound, PhaseStarting, PhaseReady, PhaseTerminating, PhaseUnknown:
		return Phase(s)
	default:
		return PhaseUnknown
	}
}

// SSHAddress is the published SSH endpoint of a running workspace.
type SSHAddress struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Info describes the container backing a workspace. Limits are absent when
// the pod template does not set them.
type Info struct {
	Image       string  `json:"image"`
	MemoryLimit *string `json:"memory_limit"`
	CPULimit    *string `json:"cpu_limit"`
}

// Status is one snapshot of a workspace as reported by the control plane.
// Snapshots are ephemeral; callers always trust the latest one.
type Status struct {
	Username   string      `json:"username,omitempty"`
	Phase      Phase       `json:"phase"`
	SSHAddress *SSHAddress `json:"ssh_address,omitempty"`
	Info       *Info       `json:"info,omitempty"`
}

// IsReady reports whether the workspace is reachable: phase ready with a
// published SSH endpoint. Any other pairing means "not yet reachable".
func (s Status) IsReady() bool {
	return s.Phase == PhaseReady && s.SSHAddress != nil
}
