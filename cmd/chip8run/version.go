package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd returns the caller's installed chip8run version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Retrieve the currently installed chip8run version",
	Long:  "Run `chip8run version` to get your current chip8run version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
