package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var readPasswordFunc = term.ReadPassword // mockable

func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the portal backend",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			v := viper.GetViper()

			email := v.GetString("email")
			if email == "" {
				fmt.Print("Email: ")
				if _, err := fmt.Scanln(&email); err != nil {
					return err
				}
			}
			fmt.Print("Password: ")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}

			return a.ctrl.Login(cmd.Context(), email, string(pwd), v.GetBool("remember"))
		},
	}

	cmd.Flags().String("email", "", "account email (prompted when omitted)")
	cmd.Flags().Bool("remember", false, "keep the session across restarts (expires after 24h)")
	return cmd
}
