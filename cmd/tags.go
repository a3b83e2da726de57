package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsRepo string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List a repository's tags, newest version first",
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().StringVar(&tagsRepo, "repo", "", "Repository id or name (required)")
	_ = tagsCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
	service, err := buildService()
	if err != nil {
		return err
	}

	tags, err := service.ListTags(cmd.Context(), tagsRepo)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}
