package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/kube-workspaces/internal/lifecycle"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop your workspace container",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, log := setup()
		defer log.Sync()

		orch := lifecycle.New(client, os.Stdout, log)
		if err := orch.StopAndWait(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run `kwsctl start` to start it again")
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
