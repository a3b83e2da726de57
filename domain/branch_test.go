package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/prforge/domain"
	testdoubles "github.com/rios0rios0/prforge/test"
)

func TestBranchResolver_ResolveBranchObject(t *testing.T) {
	t.Parallel()

	t.Run("should return the zero sentinel when no ref matches", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyRefReader{Refs: nil}
		resolver := domain.NewBranchResolver(spy)

		// when
		object, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "develop")

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/feature/x", object.Name)
		assert.Equal(t, domain.ZeroObjectID, object.OldObjectID)
	})

	t.Run("should return the zero sentinel regardless of the from branch", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyRefReader{Refs: nil}
		resolver := domain.NewBranchResolver(spy)

		// when
		object, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.ZeroObjectID, object.OldObjectID)
	})

	t.Run("should return the first ref's object id unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyRefReader{
			Refs: []domain.Ref{
				{Name: "refs/heads/main", ObjectID: "aaf2e423fe124f1ad72f2844f0b03e7586f4a0b6"},
				{Name: "refs/heads/main-archive", ObjectID: "bbf2e423fe124f1ad72f2844f0b03e7586f4a0b6"},
			},
		}
		resolver := domain.NewBranchResolver(spy)

		// when
		object, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "main")

		// then
		require.NoError(t, err)
		assert.Equal(t, "aaf2e423fe124f1ad72f2844f0b03e7586f4a0b6", object.OldObjectID)
	})

	t.Run("should filter the lookup by the normalized from branch", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyRefReader{Refs: nil}
		resolver := domain.NewBranchResolver(spy)

		// when
		_, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "refs/heads/develop")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"develop"}, spy.Filters)
	})

	t.Run("should look globally when no from branch is given", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyRefReader{Refs: nil}
		resolver := domain.NewBranchResolver(spy)

		// when
		_, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{""}, spy.Filters)
	})

	t.Run("should propagate ref lookup failures", func(t *testing.T) {
		t.Parallel()

		// given
		lookupErr := errors.New("connection refused")
		spy := &testdoubles.SpyRefReader{Err: lookupErr}
		resolver := domain.NewBranchResolver(spy)

		// when
		_, err := resolver.ResolveBranchObject(context.Background(), "repo-1", "feature/x", "main")

		// then
		require.ErrorIs(t, err, lookupErr)
	})
}
