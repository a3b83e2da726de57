package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	branchRepo string
	branchFrom string
)

var branchCmd = &cobra.Command{
	Use:   "branch <branch-name>",
	Short: "Resolve the base commit object a new branch would be created from",
	Long: `Resolve the tip object id of the base branch and pair it with the
qualified name of the new branch. When the base branch has no ref yet the
all-zero sentinel id is printed, meaning the branch starts from an initial
commit.`,
	Args: cobra.ExactArgs(1),
	RunE: runBranch,
}

func init() {
	branchCmd.Flags().StringVar(&branchRepo, "repo", "", "Repository id or name (required)")
	branchCmd.Flags().StringVar(&branchFrom, "from", "", "Base branch to resolve; empty means the default branch")
	_ = branchCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(branchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	service, err := buildService()
	if err != nil {
		return err
	}

	object, err := service.ResolveBranchObject(cmd.Context(), branchRepo, args[0], branchFrom)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", object.Name, object.OldObjectID)
	return nil
}
