package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected bool flag, exiting with a usage error if the
// flag was never registered.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetString gets an expected string flag.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetUint gets an expected unsigned integer flag.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// GetStringArray gets an expected string-array flag.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return r
}

// readFileOrExit reads filename, printing the error and exiting with the
// usage-error code on failure — every subcommand needs this, and a
// missing input file is a usage error, not a parse or validation one.
func readFileOrExit(filename string) []byte {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return data
}
