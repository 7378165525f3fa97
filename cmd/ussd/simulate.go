package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bobcode/ussd"
	"github.com/bobcode/ussd/pkg/menuyaml"
	"github.com/bobcode/ussd/pkg/registry"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an interactive subscriber session against a menu file",
	Long: `Plays a USSD session on stdin/stdout the way a gateway would drive it:
the first frame is a new-session request, every following line is one
keystroke, and the session ends when the engine stops it (or on EOF).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		menuPath, _ := cmd.Flags().GetString("menu")
		msisdn, _ := cmd.Flags().GetString("msisdn")

		menu, err := menuyaml.LoadFile(menuPath)
		if err != nil {
			return err
		}

		app := ussd.New(menu, registry.New())
		sessionID := uuid.NewString()

		ctx := cmd.Context()
		resp, err := app.HandleRequest(ctx, ussd.Request{
			SessionID:  sessionID,
			UserID:     "simulator",
			Msisdn:     msisdn,
			NewSession: true,
		})
		if err != nil {
			return err
		}
		fmt.Println(resp.Message)

		scanner := bufio.NewScanner(os.Stdin)
		for resp.ContinueSession {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())

			resp, err = app.HandleRequest(ctx, ussd.Request{
				SessionID: sessionID,
				UserID:    "simulator",
				Msisdn:    msisdn,
				Input:     input,
			})
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
		}

		fmt.Println("-- session ended --")
		return scanner.Err()
	},
}

func init() {
	simulateCmd.Flags().String("msisdn", "233200000000", "Subscriber address to simulate")
	rootCmd.AddCommand(simulateCmd)
}
