package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/kube-workspaces/internal/lifecycle"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start your workspace container",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, client, log := setup()
		defer log.Sync()

		orch := lifecycle.New(client, os.Stdout, log)
		st, err := orch.WaitReady(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printWorkspace(st, cfg)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
