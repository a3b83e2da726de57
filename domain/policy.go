package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MergeStrategyPolicyType identifies the "require a merge strategy" branch
// policy type in Azure DevOps.
var MergeStrategyPolicyType = uuid.MustParse("fa4e907d-c16b-4a4c-9dfa-4916e5d171ab")

// mergeStrategyFlags lists the policy settings flags in the fixed order they
// are consulted during derivation. The first enabled flag wins.
var mergeStrategyFlags = []struct {
	enabled  func(PolicySettings) bool
	strategy MergeStrategy
}{
	{func(s PolicySettings) bool { return s.AllowNoFastForward }, MergeNoFastForward},
	{func(s PolicySettings) bool { return s.AllowSquash }, MergeSquash},
	{func(s PolicySettings) bool { return s.AllowRebase }, MergeRebase},
	{func(s PolicySettings) bool { return s.AllowRebaseMerge }, MergeRebaseMerge},
}

// PolicyMergeStrategyResolver derives the merge strategy a branch policy
// enforces for a target branch.
type PolicyMergeStrategyResolver struct {
	policies PolicyReader
}

// NewPolicyMergeStrategyResolver creates a resolver backed by the given
// policy reader.
func NewPolicyMergeStrategyResolver(policies PolicyReader) *PolicyMergeStrategyResolver {
	return &PolicyMergeStrategyResolver{policies: policies}
}

// ResolveMergeMethod finds the first merge-strategy policy configuration
// (in provider response order) with at least one scope relevant to branchRef
// and returns the first enabled strategy flag of its settings. It falls back
// to MergeNoFastForward when no configuration matches or no flag is enabled.
//
// branchRef is the fully qualified candidate ref ("refs/heads/x"); when
// empty, any scope that survives the repository check is considered
// relevant. defaultBranchName is the repository's default branch, consulted
// only by DefaultBranch scopes.
func (r *PolicyMergeStrategyResolver) ResolveMergeMethod(
	ctx context.Context,
	repoID, project, branchRef, defaultBranchName string,
) (MergeStrategy, error) {
	configurations, err := r.policies.ListPolicyConfigurations(ctx, project, MergeStrategyPolicyType)
	if err != nil {
		return "", err
	}

	for _, configuration := range configurations {
		if hasRelevantScope(configuration.Settings.Scope, repoID, branchRef, defaultBranchName) {
			return deriveStrategy(configuration.Settings), nil
		}
	}
	return MergeNoFastForward, nil
}

// hasRelevantScope reports whether any scope applies (logical OR).
func hasRelevantScope(scopes []PolicyScope, repoID, branchRef, defaultBranchName string) bool {
	for _, scope := range scopes {
		if isRelevantScope(scope, repoID, branchRef, defaultBranchName) {
			return true
		}
	}
	return false
}

// isRelevantScope implements the three-way scope match:
//
//   - DefaultBranch scopes match when no candidate ref was given, or when
//     the candidate is the repository's default branch. An unknown default
//     branch never matches.
//   - Other scopes are disqualified by a repository mismatch, then compared
//     by name: Exact requires equality, Prefix a plain string prefix (no
//     path-segment awareness).
//   - Without a candidate ref, any scope surviving the repository check is
//     relevant.
func isRelevantScope(scope PolicyScope, repoID, branchRef, defaultBranchName string) bool {
	if scope.MatchKind.Is(MatchDefaultBranch) {
		if branchRef == "" {
			return true
		}
		return defaultBranchName != "" && branchRef == QualifiedBranchName(defaultBranchName)
	}

	if scope.RepositoryID != nil && !strings.EqualFold(scope.RepositoryID.String(), repoID) {
		return false
	}
	if branchRef == "" {
		return true
	}

	switch {
	case scope.MatchKind.Is(MatchExact):
		return scope.RefName == branchRef
	case scope.MatchKind.Is(MatchPrefix):
		return scope.RefName != "" && strings.HasPrefix(branchRef, scope.RefName)
	}
	return false
}

// deriveStrategy walks the flag table in its fixed order and returns the
// first enabled strategy, defaulting to MergeNoFastForward.
func deriveStrategy(settings PolicySettings) MergeStrategy {
	for _, flag := range mergeStrategyFlags {
		if flag.enabled(settings) {
			return flag.strategy
		}
	}
	return MergeNoFastForward
}
