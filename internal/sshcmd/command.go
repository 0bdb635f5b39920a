package sshcmd

import (
	"errors"
	"os"
	"os/exec"
	"strconv"

	"github.com/lzjever/kube-workspaces/internal/workspace"
)

// Identity is what the command builder needs from the resolved config.
type Identity struct {
	// Username is the workspace-assigned user.
	Username string
	// LocalUser is the invoking OS user. The user@ prefix is elided when it
	// matches Username, since ssh defaults to the local user anyway.
	LocalUser string
	// PrivateKeyPath is passed to ssh via -i.
	PrivateKeyPath string
}

// Args assembles the argv for the external ssh binary. The result is an
// argv vector, never a shell string. -p is included only for non-default
// ports; extraArgs (e.g. -L forwards) go before the destination and
// remoteCommand tokens after it.
func Args(addr workspace.SSHAddress, id Identity, extraArgs, remoteCommand []string) []string {
	args := []string{"ssh", "-i", id.PrivateKeyPath}
	if addr.Port != 22 {
		args = append(args, "-p", strconv.Itoa(addr.Port))
	}
	args = append(args, extraArgs...)

	dest := addr.Address
	if id.Username != id.LocalUser {
		dest = id.Username + "@" + addr.Address
	}
	args = append(args, dest)
	return append(args, remoteCommand...)
}

// Run hands control to the external ssh process, wiring the terminal
// through, and returns the child's exit code once it terminates.
func Run(argv []string) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
