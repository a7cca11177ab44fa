package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

var profileUpdate domain.ProfileUpdate

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the health profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the health profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, cached, err := app.Profile.Get(cmd.Context())
		if err != nil {
			return err
		}
		if cached {
			color.Yellow("Backend unreachable, showing cached profile.")
		}
		printProfile(profile)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the health profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := app.Profile.Update(cmd.Context(), profileUpdate)
		if err != nil {
			return err
		}
		fmt.Println("Profile updated.")
		if profile != nil {
			printProfile(profile)
		}
		return nil
	},
}

func printProfile(p *domain.Profile) {
	bold := color.New(color.Bold)
	bold.Println(p.Name)
	fmt.Printf("  Email:  %s\n", p.Email)
	if p.Gender != "" {
		fmt.Printf("  Gender: %s\n", p.Gender)
	}
	if p.HeightCM > 0 {
		fmt.Printf("  Height: %.1f cm\n", p.HeightCM)
	}
	if p.WeightKG > 0 {
		fmt.Printf("  Weight: %.1f kg\n", p.WeightKG)
	}
	if p.Goal != "" {
		fmt.Printf("  Goal:   %s\n", p.Goal)
	}
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Name, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Email, "email", "", "email address")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Gender, "gender", "", "gender (male|female|other)")
	profileUpdateCmd.Flags().Float64Var(&profileUpdate.HeightCM, "height", 0, "height in cm")
	profileUpdateCmd.Flags().Float64Var(&profileUpdate.WeightKG, "weight", 0, "weight in kg")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Goal, "goal", "", "health goal")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
