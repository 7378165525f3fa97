package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ussd",
	Short: "ussd serves and simulates menu-driven USSD flows",
	Long: `ussd runs the session navigation engine over a YAML menu definition:
serve it behind an HTTP gateway endpoint, simulate a subscriber session
interactively, or validate a menu file.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("menu", "menu.yaml", "Path to the menu definition file")
	rootCmd.PersistentFlags().String("config", "", "Path to an optional config file")
}
