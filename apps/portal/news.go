package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/santarita/portal/core/content"
	"github.com/santarita/portal/core/resource"
)

func NewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Manage news articles",
	}
	cmd.AddCommand(newsListCmd())
	cmd.AddCommand(newsSaveCmd())
	cmd.AddCommand(newsDeleteCmd())
	return cmd
}

func newsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List published news",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			var articles []content.Article
			if err := a.client.Get(cmd.Context(), content.PathNews, &articles); err != nil {
				return err
			}
			for _, art := range articles {
				fmt.Printf("%s\t%s\n", art.ID, art.Title)
			}
			return nil
		},
	}
}

func newsSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a news article, or update one with --id",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			v := viper.GetViper()
			article := content.Article{
				Title: v.GetString("title"),
				Body:  v.GetString("body"),
				Date:  v.GetString("date"),
			}
			save := a.res.Save(content.PathNews, nil)
			return save(cmd.Context(), resource.JSON{Value: article}, v.GetString("id"))
		},
	}

	cmd.Flags().String("id", "", "article to update (created when omitted)")
	cmd.Flags().String("title", "", "article title")
	cmd.Flags().String("body", "", "article body")
	cmd.Flags().String("date", "", "publication date")
	return cmd
}

func newsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a news article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := startApp()
			if err != nil {
				return err
			}
			del := a.res.Delete(content.PathNews, nil)
			return del(cmd.Context(), args[0])
		},
	}
}
