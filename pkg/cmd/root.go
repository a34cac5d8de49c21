// Package cmd implements the edicore command-line tool named in
// spec.md §6: a cobra command tree with "parse", "validate", "map", and
// "schema resolve" subcommands.
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version can be set at build time via -ldflags. No command reads it, and
// there is no fallback to the Go module's embedded build info.
var Version string

var rootCmd = &cobra.Command{
	Use:   "edicore",
	Short: "Parse, validate, and transform UN/EDIFACT documents.",
	Long:  "edicore is a command-line tool for parsing UN/EDIFACT interchanges into a typed intermediate form, validating them against layered schemas, and mapping them to and from other shapes.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the command tree; it is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(3)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
