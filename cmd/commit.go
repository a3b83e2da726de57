package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commitRepo string

var commitCmd = &cobra.Command{
	Use:   "commit <commit-id>",
	Short: "Show the metadata of a single commit",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().StringVar(&commitRepo, "repo", "", "Repository id or name (required)")
	_ = commitCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	service, err := buildService()
	if err != nil {
		return err
	}

	commit, err := service.GetCommit(cmd.Context(), commitRepo, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("commit %s\n", commit.CommitID)
	fmt.Printf("Author: %s <%s>\n", commit.Author.Name, commit.Author.Email)
	fmt.Printf("Date:   %s\n", commit.Author.Date)
	fmt.Printf("\n    %s\n", commit.Comment)
	return nil
}
