package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			return a.ctrl.Logout(!viper.GetBool("yes"))
		},
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	return cmd
}
