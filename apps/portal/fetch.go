package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func FetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Load all public site content and summarize it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			a.ctrl.FetchContent(cmd.Context())
			ct := a.ctrl.Content()
			if ct == nil {
				// the failure notice was already emitted
				return nil
			}
			fmt.Printf("news: %d  notices: %d  events: %d  gallery: %d\n",
				len(ct.News), len(ct.Notices), len(ct.Events), len(ct.Gallery))
			fmt.Printf("team: %d  history: %d  menu: %d  schedules: %d\n",
				len(ct.Team), len(ct.History), len(ct.Menu), len(ct.Schedules))
			return nil
		},
	}
}
