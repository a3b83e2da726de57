package application

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/prforge/domain"
)

// ResolverService is the facade the pull request automation talks to. It
// bundles the state resolvers for one Azure DevOps organization; every call
// is an independent read with no shared mutable state.
type ResolverService struct {
	branches     *domain.BranchResolver
	files        *domain.FileContentResolver
	policies     *domain.PolicyMergeStrategyResolver
	teams        *domain.TeamLister
	refs         domain.RefReader
	commits      domain.CommitReader
	repositories domain.RepositoryReader
	tags         domain.TagReader
}

// NewResolverService creates a service from the resolvers and the remaining
// pass-through readers.
func NewResolverService(
	branches *domain.BranchResolver,
	files *domain.FileContentResolver,
	policies *domain.PolicyMergeStrategyResolver,
	teams *domain.TeamLister,
	refs domain.RefReader,
	commits domain.CommitReader,
	repositories domain.RepositoryReader,
	tags domain.TagReader,
) *ResolverService {
	return &ResolverService{
		branches:     branches,
		files:        files,
		policies:     policies,
		teams:        teams,
		refs:         refs,
		commits:      commits,
		repositories: repositories,
		tags:         tags,
	}
}

// ResolveBranchObject resolves the base object id a new branch should be
// created from. See domain.BranchResolver.
func (s *ResolverService) ResolveBranchObject(
	ctx context.Context,
	repoID, branchName, fromBranchName string,
) (domain.BranchObject, error) {
	object, err := s.branches.ResolveBranchObject(ctx, repoID, branchName, fromBranchName)
	if err != nil {
		return domain.BranchObject{}, err
	}
	if object.OldObjectID == domain.ZeroObjectID {
		logger.Debugf("No base ref for %q in repository %q, branching from an initial commit",
			fromBranchName, repoID)
	}
	return object, nil
}

// ResolveFile fetches and classifies file content at a branch. See
// domain.FileContentResolver.
func (s *ResolverService) ResolveFile(
	ctx context.Context,
	repoID, path, branchName string,
) (domain.FileLookup, error) {
	return s.files.ResolveFile(ctx, repoID, path, branchName)
}

// GetFileContent returns file content at a branch, or nil when the file or
// branch is absent.
func (s *ResolverService) GetFileContent(
	ctx context.Context,
	repoID, path, branchName string,
) (*string, error) {
	return s.files.GetFileContent(ctx, repoID, path, branchName)
}

// ResolveMergeMethod derives the merge strategy the branch policy enforces
// for branchRef. When defaultBranchName is empty it is resolved from the
// repository metadata first, so DefaultBranch policy scopes can match.
func (s *ResolverService) ResolveMergeMethod(
	ctx context.Context,
	repoID, project, branchRef, defaultBranchName string,
) (domain.MergeStrategy, error) {
	if defaultBranchName == "" {
		repo, err := s.repositories.GetRepository(ctx, repoID)
		if err != nil {
			return "", err
		}
		defaultBranchName = domain.ShortBranchName(repo.DefaultBranch)
	}
	return s.policies.ResolveMergeMethod(ctx, repoID, project, branchRef, defaultBranchName)
}

// ListAllTeams returns every team of a project in provider order.
func (s *ResolverService) ListAllTeams(ctx context.Context, projectID string) ([]domain.Team, error) {
	return s.teams.ListAllTeams(ctx, projectID)
}

// ListRefs returns the refs of a repository filtered by a branch name
// prefix.
func (s *ResolverService) ListRefs(ctx context.Context, repoID, filter string) ([]domain.Ref, error) {
	return s.refs.ListRefs(ctx, repoID, filter)
}

// GetCommit returns the metadata of a single commit.
func (s *ResolverService) GetCommit(ctx context.Context, repoID, commitID string) (domain.Commit, error) {
	return s.commits.GetCommit(ctx, repoID, commitID)
}

// GetRepository returns repository metadata, including the default branch.
func (s *ResolverService) GetRepository(ctx context.Context, repoID string) (domain.Repository, error) {
	return s.repositories.GetRepository(ctx, repoID)
}

// ListTags returns a repository's tags, newest first.
func (s *ResolverService) ListTags(ctx context.Context, repoID string) ([]string, error) {
	return s.tags.ListTags(ctx, repoID)
}
