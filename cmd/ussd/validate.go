package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobcode/ussd/pkg/menuyaml"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a menu definition file",
	RunE: func(cmd *cobra.Command, args []string) error {
		menuPath, _ := cmd.Flags().GetString("menu")

		menu, err := menuyaml.LoadFile(menuPath)
		if err != nil {
			return err
		}

		fmt.Printf("menu %q: %d pages, root %q: OK\n", menu.ID, len(menu.Pages), menu.RootID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
