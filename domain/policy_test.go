package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/prforge/domain"
	testdoubles "github.com/rios0rios0/prforge/test"
)

func scopedConfiguration(settings domain.PolicySettings) domain.PolicyConfiguration {
	return domain.PolicyConfiguration{ID: 1, IsEnabled: true, IsBlocking: true, Settings: settings}
}

func exactScope(refName string) domain.PolicyScope {
	return domain.PolicyScope{RefName: refName, MatchKind: domain.MatchExact}
}

func prefixScope(refName string) domain.PolicyScope {
	return domain.PolicyScope{RefName: refName, MatchKind: domain.MatchPrefix}
}

func TestPolicyMergeStrategyResolver_ResolveMergeMethod(t *testing.T) {
	t.Parallel()

	repoID := "29ad5e2e-f24f-4a43-a1d8-1d9d8a0d8e3a"

	t.Run("should request only the merge strategy policy type", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		_, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{domain.MergeStrategyPolicyType}, spy.PolicyTypes)
	})

	t.Run("should match an exact scope only for the exact ref", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{exactScope("refs/heads/main")},
					AllowSquash: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		matched, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")
		other, otherErr := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/other", "main")

		// then
		require.NoError(t, err)
		require.NoError(t, otherErr)
		assert.Equal(t, domain.MergeSquash, matched)
		assert.Equal(t, domain.MergeNoFastForward, other)
	})

	t.Run("should match a prefix scope by plain string prefix", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{prefixScope("refs/heads/release/")},
					AllowRebase: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		matched, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/release/1.0", "main")
		noSeparator, noSepErr := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/releaseX", "main")

		// then
		require.NoError(t, err)
		require.NoError(t, noSepErr)
		assert.Equal(t, domain.MergeRebase, matched)
		assert.Equal(t, domain.MergeNoFastForward, noSeparator)
	})

	t.Run("should disqualify a scope pinned to another repository", func(t *testing.T) {
		t.Parallel()

		// given
		otherRepo := uuid.MustParse("7e4c78fb-54a6-4cf1-8bbb-9b1f0e5bb2e1")
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope: []domain.PolicyScope{
						{RepositoryID: &otherRepo, RefName: "refs/heads/main", MatchKind: domain.MatchExact},
					},
					AllowSquash: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeNoFastForward, strategy)
	})

	t.Run("should treat a nil scope repository as project wide", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{exactScope("refs/heads/main")},
					AllowRebase: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeRebase, strategy)
	})

	t.Run("should match a default branch scope against the default branch ref", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:            []domain.PolicyScope{{MatchKind: domain.MatchDefaultBranch}},
					AllowRebaseMerge: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		matched, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")
		other, otherErr := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/feature/x", "main")

		// then
		require.NoError(t, err)
		require.NoError(t, otherErr)
		assert.Equal(t, domain.MergeRebaseMerge, matched)
		assert.Equal(t, domain.MergeNoFastForward, other)
	})

	t.Run("should not match a default branch scope when the default branch is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{{MatchKind: domain.MatchDefaultBranch}},
					AllowSquash: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeNoFastForward, strategy)
	})

	t.Run("should match any surviving scope when no branch ref is given", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{exactScope("refs/heads/whatever")},
					AllowSquash: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeSquash, strategy)
	})

	t.Run("should pick the first enabled flag in the fixed order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{exactScope("refs/heads/main")},
					AllowSquash: false,
					AllowRebase: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeRebase, strategy)
	})

	t.Run("should fall back to noFastForward when no flag is enabled", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope: []domain.PolicyScope{exactScope("refs/heads/main")},
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeNoFastForward, strategy)
	})

	t.Run("should fall back to noFastForward when no configuration matches", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeNoFastForward, strategy)
	})

	t.Run("should use the first matching configuration in provider order", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyPolicyReader{
			Configurations: []domain.PolicyConfiguration{
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{exactScope("refs/heads/other")},
					AllowSquash: true,
				}),
				scopedConfiguration(domain.PolicySettings{
					Scope:       []domain.PolicyScope{prefixScope("refs/heads/")},
					AllowRebase: true,
				}),
				scopedConfiguration(domain.PolicySettings{
					Scope:            []domain.PolicyScope{prefixScope("refs/heads/")},
					AllowRebaseMerge: true,
				}),
			},
		}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		strategy, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.MergeRebase, strategy)
	})

	t.Run("should propagate policy lookup failures", func(t *testing.T) {
		t.Parallel()

		// given
		lookupErr := errors.New("connection refused")
		spy := &testdoubles.SpyPolicyReader{Err: lookupErr}
		resolver := domain.NewPolicyMergeStrategyResolver(spy)

		// when
		_, err := resolver.ResolveMergeMethod(context.Background(), repoID, "proj", "refs/heads/main", "main")

		// then
		require.ErrorIs(t, err, lookupErr)
	})
}
