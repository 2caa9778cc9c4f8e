package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Long:  `Report the toolchain version along with the commit and date it was built from.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wabbit %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
