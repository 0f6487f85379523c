// Version command for the wordloom CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexmesh/wordloom/pkg/wordloom"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wordloom version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wordloom", wordloom.Version)
	},
}
