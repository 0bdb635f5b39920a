package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/kube-workspaces/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file interactively",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := configPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if _, err := config.Initialize(os.Stdin, os.Stdout, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
