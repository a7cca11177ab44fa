package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List chat sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Chat.LoadSessions(cmd.Context()); err != nil {
			return err
		}
		sessions := app.Chat.Sessions()
		if len(sessions) == 0 {
			fmt.Println("No chat sessions yet.")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  %s\n", s.ID, s.UpdatedAt.Format("2006-01-02 15:04"), s.Title)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := domain.ParseSessionID(args[0])
		if err != nil {
			return err
		}
		if err := app.Chat.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Session deleted.")
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
