package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			theme, err := app.State.Get(ctx, domain.StateKeyTheme)
			if err != nil {
				return err
			}
			if theme == "" {
				theme = string(domain.ThemeLight)
			}
			fmt.Println(theme)
			return nil
		}

		theme := domain.Theme(args[0])
		if theme != domain.ThemeLight && theme != domain.ThemeDark {
			return fmt.Errorf("unknown theme %q", args[0])
		}
		return app.State.Set(ctx, domain.StateKeyTheme, string(theme))
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
