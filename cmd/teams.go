package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List every team of a project",
	RunE:  runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, _ []string) error {
	if project == "" {
		return errors.New("project is required (--project or config file)")
	}

	service, err := buildService()
	if err != nil {
		return err
	}

	teams, err := service.ListAllTeams(cmd.Context(), project)
	if err != nil {
		return err
	}

	for _, team := range teams {
		fmt.Printf("%s\t%s\n", team.ID, team.Name)
	}
	fmt.Printf("%d team(s)\n", len(teams))
	return nil
}
