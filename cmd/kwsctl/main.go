package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagUser       string
	flagSSHKeyPath string
	flagAPI        string
	flagConfig     string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "kwsctl",
	Short: "Manage your personal Kubernetes workspace",
	Long:  `kwsctl starts, stops and connects to a personal server-managed workspace container.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Username to use. Defaults to the current OS username")
	rootCmd.PersistentFlags().StringVar(&flagSSHKeyPath, "ssh-key-path", "", "Path of the SSH public key to use. Defaults to ~/.ssh/id_rsa.pub")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "The API URL. Like: http://workspace-manager.DOMAIN.com")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path. Defaults to ~/.config/kube-workspaces/config.json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
