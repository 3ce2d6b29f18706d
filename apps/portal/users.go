package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func UsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List portal accounts (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			users, err := a.ctrl.Users(cmd.Context())
			if err != nil {
				// a 403 was already handled quietly; anything else was
				// notified
				return nil
			}
			for _, usr := range users {
				flags := ""
				if usr.IsAdmin {
					flags += " [admin]"
				}
				if usr.IsSecretary {
					flags += " [secretary]"
				}
				fmt.Printf("%d\t%s <%s>%s\n", usr.ID, usr.Name, usr.Email, flags)
			}
			return nil
		},
	}
}
