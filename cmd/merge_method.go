package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mergeRepo          string
	mergeBranchRef     string
	mergeDefaultBranch string
)

var mergeMethodCmd = &cobra.Command{
	Use:   "merge-method",
	Short: "Resolve the merge strategy branch policy enforces for a branch",
	Long: `Match the project's merge-strategy branch policies against a candidate
branch ref and print the strategy the first matching policy allows. With no
match the default strategy (noFastForward) is printed.`,
	RunE: runMergeMethod,
}

func init() {
	mergeMethodCmd.Flags().StringVar(&mergeRepo, "repo", "", "Repository id (required)")
	mergeMethodCmd.Flags().StringVar(&mergeBranchRef, "branch-ref", "", "Candidate branch ref, e.g. refs/heads/main; empty matches globally")
	mergeMethodCmd.Flags().StringVar(&mergeDefaultBranch, "default-branch", "", "Default branch name; resolved from the repository when empty")
	_ = mergeMethodCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(mergeMethodCmd)
}

func runMergeMethod(cmd *cobra.Command, _ []string) error {
	if project == "" {
		return errors.New("project is required (--project or config file)")
	}

	service, err := buildService()
	if err != nil {
		return err
	}

	strategy, err := service.ResolveMergeMethod(
		cmd.Context(), mergeRepo, project, mergeBranchRef, mergeDefaultBranch,
	)
	if err != nil {
		return err
	}

	fmt.Println(strategy)
	return nil
}
