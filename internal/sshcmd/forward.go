package sshcmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec is wrapped by every forward-spec parse failure.
var ErrInvalidSpec = errors.New("invalid port-forward spec")

const defaultForwardHost = "127.0.0.1"

// ForwardSpec describes one ssh -L local port forward.
type ForwardSpec struct {
	LocalPort  int
	RemoteHost string
	RemotePort int
}

// ParseForward parses a compact forward spec. Accepted forms:
//
//	"PORT"              forward localhost PORT to remote PORT
//	"LOCAL:REMOTE"      forward localhost LOCAL to remote REMOTE
//	"LOCAL:HOST:REMOTE" forward localhost LOCAL to HOST:REMOTE
//
// Whitespace around the spec is ignored.
func ParseForward(spec string) (ForwardSpec, error) {
	fields := strings.Split(strings.TrimSpace(spec), ":")
	switch len(fields) {
	case 1:
		port, err := parsePort(fields[0])
		if err != nil {
			return ForwardSpec{}, err
		}
		return ForwardSpec{LocalPort: port, RemoteHost: defaultForwardHost, RemotePort: port}, nil
	case 2:
		local, err := parsePort(fields[0])
		if err != nil {
			return ForwardSpec{}, err
		}
		remote, err := parsePort(fields[1])
		if err != nil {
			return ForwardSpec{}, err
		}
		return ForwardSpec{LocalPort: local, RemoteHost: defaultForwardHost, RemotePort: remote}, nil
	case 3:
		local, err := parsePort(fields[0])
		if err != nil {
			return ForwardSpec{}, err
		}
		remote, err := parsePort(fields[2])
		if err != nil {
			return ForwardSpec{}, err
		}
		return ForwardSpec{LocalPort: local, RemoteHost: fields[1], RemotePort: remote}, nil
	default:
		return ForwardSpec{}, fmt.Errorf("%w: %q has too many fields", ErrInvalidSpec, spec)
	}
}

// SSHArgs renders the spec as arguments for the external ssh binary.
func (f ForwardSpec) SSHArgs() []string {
	return []string{"-L", fmt.Sprintf("%d:%s:%d", f.LocalPort, f.RemoteHost, f.RemotePort)}
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid port", ErrInvalidSpec, s)
	}
	return port, nil
}
