// Package cli implements the playctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "playctl",
	Short:   "playctl — submit and track studio generation jobs from the terminal",
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(variationCmd)
	rootCmd.AddCommand(inpaintCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(costCmd)
}
