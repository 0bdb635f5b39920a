package main

import (
	"fmt"

	"github.com/lzjever/kube-workspaces/internal/config"
	"github.com/lzjever/kube-workspaces/internal/workspace"
)

// printWorkspace renders the workspace details and the ssh connect hint.
func printWorkspace(st workspace.Status, cfg config.Config) {
	if st.Info != nil {
		fmt.Printf("  * Image: %s\n", st.Info.Image)
		if st.Info.MemoryLimit != nil {
			fmt.Printf("    Memory: %s\n", *st.Info.MemoryLimit)
		}
		if st.Info.CPULimit != nil {
			fmt.Printf("    CPU: %s\n", *st.Info.CPULimit)
		}
	}

	if st.SSHAddress == nil {
		fmt.Println("SSH not ready yet - run `kwsctl start` again")
		return
	}
	prefix := ""
	if cfg.Username != config.CurrentUsername() {
		prefix = cfg.Username + "@"
	}
	fmt.Printf("Connect via ssh -p %d %s%s\n", st.SSHAddress.Port, prefix, st.SSHAddress.Address)
}
