package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time via -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the trcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trcheck", version)
	},
}
