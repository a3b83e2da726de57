package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/prforge/application"
	"github.com/rios0rios0/prforge/domain"
	"github.com/rios0rios0/prforge/infrastructure/azuredevops"
)

// buildService wires the provider client, the resolvers and the service
// facade through the DIG container.
func buildService() (*application.ResolverService, error) {
	container := dig.New()

	constructors := []any{
		createClient,
		func(c *azuredevops.Client) domain.RefReader { return c },
		func(c *azuredevops.Client) domain.ItemReader { return c },
		func(c *azuredevops.Client) domain.PolicyReader { return c },
		func(c *azuredevops.Client) domain.TeamReader { return c },
		func(c *azuredevops.Client) domain.CommitReader { return c },
		func(c *azuredevops.Client) domain.RepositoryReader { return c },
		func(c *azuredevops.Client) domain.TagReader { return c },
		domain.NewBranchResolver,
		domain.NewFileContentResolver,
		domain.NewPolicyMergeStrategyResolver,
		domain.NewTeamLister,
		application.NewResolverService,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return nil, err
		}
	}

	var service *application.ResolverService
	if err := container.Invoke(func(s *application.ResolverService) {
		service = s
	}); err != nil {
		return nil, err
	}
	return service, nil
}
