package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			if !a.ctrl.IsLoggedIn() {
				fmt.Println("Not logged in.")
				return nil
			}
			usr := a.ctrl.User()
			role := "user"
			switch {
			case usr.IsAdmin:
				role = "admin"
			case usr.IsSecretary:
				role = "secretary"
			}
			fmt.Printf("%s <%s> (%s)\n", usr.Name, usr.Email, role)
			return nil
		},
	}
}
