package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refsRepo string

var refsCmd = &cobra.Command{
	Use:   "refs [branch-prefix]",
	Short: "List the refs of a repository, optionally filtered by branch prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefs,
}

func init() {
	refsCmd.Flags().StringVar(&refsRepo, "repo", "", "Repository id or name (required)")
	_ = refsCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(refsCmd)
}

func runRefs(cmd *cobra.Command, args []string) error {
	service, err := buildService()
	if err != nil {
		return err
	}

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	refs, err := service.ListRefs(cmd.Context(), refsRepo, filter)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		fmt.Printf("%s\t%s\n", ref.ObjectID, ref.Name)
	}
	return nil
}
