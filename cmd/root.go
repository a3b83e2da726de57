package cmd

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/prforge/config"
	"github.com/rios0rios0/prforge/infrastructure/azuredevops"
)

var (
	// Global flags
	organization string
	pat          string
	project      string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "prforge",
	Short: "Repository state resolver for Azure DevOps pull request automation",
	Long: `A CLI that resolves the repository state a pull request automation needs
before it opens or completes PRs on Azure DevOps:

- The base commit object a new branch should be created from
- File contents at a branch, with not-found classification
- The merge strategy enforced by branch policies for a target branch
- Commit metadata, refs, tags, and project teams`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&organization, "organization", "o", "", "Azure DevOps organization name or URL (e.g., https://dev.azure.com/MyOrg)")
	rootCmd.PersistentFlags().StringVarP(&pat, "pat", "p", "", "Personal Access Token for Azure DevOps (or set AZURE_DEVOPS_PAT env var)")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "Default project for policy and team lookups")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// createClient builds the provider client from flags, falling back to the
// config file and the AZURE_DEVOPS_PAT environment variable.
func createClient() (*azuredevops.Client, error) {
	org := organization
	token := pat

	if org == "" || token == "" {
		if path, err := config.FindConfigFile(); err == nil {
			cfg, loadErr := config.Load(path)
			if loadErr != nil {
				return nil, loadErr
			}
			if org == "" {
				org = cfg.Organization
			}
			if token == "" {
				token = cfg.Token
			}
			if project == "" {
				project = cfg.Project
			}
		}
	}

	if token == "" {
		token = os.Getenv("AZURE_DEVOPS_PAT")
	}
	if org == "" {
		return nil, errors.New("organization is required (--organization or config file)")
	}
	if token == "" {
		return nil, errors.New("PAT is required (--pat, config file, or AZURE_DEVOPS_PAT)")
	}

	return azuredevops.NewClient(org, token), nil
}
