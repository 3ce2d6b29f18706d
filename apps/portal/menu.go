package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/santarita/portal/core/content"
	"github.com/santarita/portal/core/resource"
)

func MenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the cafeteria menu file",
	}
	cmd.AddCommand(menuUploadCmd())
	return cmd
}

func menuUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a new menu file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			form := resource.NewForm().AddFile("file", filepath.Base(args[0]), f)
			save := a.res.Save(content.PathMenu, nil)
			return save(cmd.Context(), form, "")
		},
	}
}
