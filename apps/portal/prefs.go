package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/santarita/portal/core/session"
)

func PrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change accessibility preferences",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			prefs := a.store.LoadPreferences()
			if cmd.Flags().Changed("high-contrast") || cmd.Flags().Changed("font-size") {
				if cmd.Flags().Changed("high-contrast") {
					prefs.HighContrast = viper.GetBool("high-contrast")
				}
				if cmd.Flags().Changed("font-size") {
					prefs.FontSize = viper.GetInt("font-size")
				}
				if err := a.store.SavePreferences(session.Preferences{
					HighContrast: prefs.HighContrast,
					FontSize:     prefs.FontSize,
				}); err != nil {
					return err
				}
			}
			fmt.Printf("high contrast: %v\nfont size: %d%%\n", prefs.HighContrast, prefs.FontSize)
			return nil
		},
	}

	cmd.Flags().Bool("high-contrast", false, "toggle the high-contrast theme")
	cmd.Flags().Int("font-size", 100, "base font size percentage")
	return cmd
}
