package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzjever/kube-workspaces/internal/config"
	"github.com/lzjever/kube-workspaces/internal/lifecycle"
	"github.com/lzjever/kube-workspaces/internal/sshcmd"
)

var connectForwards []string

var connectCmd = &cobra.Command{
	Use:   "connect [-f SPEC]... [-- COMMAND...]",
	Short: "Start your workspace and open an SSH session to it",
	Long: `Starts the workspace if needed, waits until it is reachable and hands
over to the system ssh client. Arguments after -- are run as the remote
command. The process exit code mirrors the ssh exit code.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, client, log := setup()
		defer log.Sync()

		orch := lifecycle.New(client, os.Stdout, log)
		st, err := orch.WaitReady(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var forwardArgs []string
		for _, spec := range connectForwards {
			fwd, err := sshcmd.ParseForward(spec)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: port-forward %q: %v\n", spec, err)
				os.Exit(1)
			}
			forwardArgs = append(forwardArgs, fwd.SSHArgs()...)
		}

		argv := sshcmd.Args(*st.SSHAddress, sshcmd.Identity{
			Username:       cfg.Username,
			LocalUser:      config.CurrentUsername(),
			PrivateKeyPath: cfg.SSHPrivateKeyPath,
		}, forwardArgs, args)

		log.Debug("ssh handoff", zap.Strings("argv", argv))
		code, err := sshcmd.Run(argv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: run ssh: %v\n", err)
			os.Exit(1)
		}
		os.Exit(code)
	},
}

func init() {
	connectCmd.Flags().StringArrayVarP(&connectForwards, "port-forward", "f", nil,
		"Local port forward: PORT, LOCAL:REMOTE or LOCAL:HOST:REMOTE (repeatable)")
	rootCmd.AddCommand(connectCmd)
}
