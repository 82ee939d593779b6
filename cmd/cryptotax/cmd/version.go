package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the cryptotax CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cryptotax version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "FIFO capital gains for cryptocurrency trade logs")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
