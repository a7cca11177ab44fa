package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store the bearer token issued by the VitaWise backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Tokens.Save(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		fmt.Println("Token stored.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential and cached profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Tokens.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
