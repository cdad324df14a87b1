package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	datahandler "github.com/stabilefrisur/aa-data-handler"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aadata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aadata version %s\n", strings.TrimSpace(datahandler.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
