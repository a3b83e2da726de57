package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/prforge/domain"
)

var (
	catRepo   string
	catBranch string
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <path>",
	Short: "Print the content of a file at a branch",
	Long: `Fetch a single file pinned to a branch and print its content.
"File not found" and "branch not found" are reported as such instead of
failing the command; only transport errors fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatFile,
}

func init() {
	catFileCmd.Flags().StringVar(&catRepo, "repo", "", "Repository id or name (required)")
	catFileCmd.Flags().StringVar(&catBranch, "branch", "", "Branch to read from (required)")
	_ = catFileCmd.MarkFlagRequired("repo")
	_ = catFileCmd.MarkFlagRequired("branch")
	rootCmd.AddCommand(catFileCmd)
}

func runCatFile(cmd *cobra.Command, args []string) error {
	service, err := buildService()
	if err != nil {
		return err
	}

	lookup, err := service.ResolveFile(cmd.Context(), catRepo, args[0], catBranch)
	if err != nil {
		return err
	}

	switch lookup.Outcome {
	case domain.FileFound:
		fmt.Print(lookup.Content)
	case domain.FileMissing:
		fmt.Printf("file %q not found on branch %q\n", args[0], catBranch)
	case domain.BranchMissing:
		fmt.Printf("branch %q not found\n", catBranch)
	}
	return nil
}
