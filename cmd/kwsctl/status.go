package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current workspace status",
	Run: func(cmd *cobra.Command, args []string) {
		_, client, log := setup()
		defer log.Sync()

		st, err := client.Status(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Phase:\t%s\n", st.Phase)
		if st.SSHAddress != nil {
			fmt.Fprintf(w, "SSH:\t%s:%d\n", st.SSHAddress.Address, st.SSHAddress.Port)
		}
		if st.Info != nil {
			fmt.Fprintf(w, "Image:\t%s\n", st.Info.Image)
			if st.Info.MemoryLimit != nil {
				fmt.Fprintf(w, "Memory:\t%s\n", *st.Info.MemoryLimit)
			}
			if st.Info.CPULimit != nil {
				fmt.Fprintf(w, "CPU:\t%s\n", *st.Info.CPULimit)
			}
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
