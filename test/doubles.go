// Package testdoubles provides test doubles (spies, stubs, dummies) for the
// domain reader interfaces. These are hand-crafted implementations — no mock
// frameworks.
package testdoubles

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/rios0rios0/prforge/domain"
)

// ---------------------------------------------------------------------------
// SpyRefReader
// ---------------------------------------------------------------------------

// SpyRefReader implements domain.RefReader as a configurable spy.
type SpyRefReader struct {
	Refs []domain.Ref
	Err  error
	// spy: filters that were requested
	Filters []string
}

var _ domain.RefReader = (*SpyRefReader)(nil)

func (r *SpyRefReader) ListRefs(_ context.Context, _, filter string) ([]domain.Ref, error) {
	r.Filters = append(r.Filters, filter)
	return r.Refs, r.Err
}

// ---------------------------------------------------------------------------
// SpyItemReader
// ---------------------------------------------------------------------------

// SpyItemReader implements domain.ItemReader as a configurable spy. With a
// nil Body it reports "nothing readable"; otherwise each call returns a
// fresh stream over *Body and records whether it was closed.
type SpyItemReader struct {
	Body *string
	Err  error
	// spy: branches that were requested, and stream close tracking
	Branches []string
	Closed   bool
}

var _ domain.ItemReader = (*SpyItemReader)(nil)

func (r *SpyItemReader) GetItemText(_ context.Context, _, _, branch string) (io.ReadCloser, error) {
	r.Branches = append(r.Branches, branch)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Body == nil {
		return nil, nil
	}
	return &trackedStream{Reader: strings.NewReader(*r.Body), closed: &r.Closed}, nil
}

type trackedStream struct {
	io.Reader
	closed *bool
}

func (s *trackedStream) Close() error {
	*s.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// SpyPolicyReader
// ---------------------------------------------------------------------------

// SpyPolicyReader implements domain.PolicyReader as a configurable spy.
type SpyPolicyReader struct {
	Configurations []domain.PolicyConfiguration
	Err            error
	// spy: policy types that were requested
	PolicyTypes []uuid.UUID
}

var _ domain.PolicyReader = (*SpyPolicyReader)(nil)

func (r *SpyPolicyReader) ListPolicyConfigurations(
	_ context.Context,
	_ string,
	policyType uuid.UUID,
) ([]domain.PolicyConfiguration, error) {
	r.PolicyTypes = append(r.PolicyTypes, policyType)
	return r.Configurations, r.Err
}

// ---------------------------------------------------------------------------
// SpyTeamReader
// ---------------------------------------------------------------------------

// SpyTeamReader implements domain.TeamReader as a configurable spy serving
// pre-cut pages in order.
type SpyTeamReader struct {
	Pages [][]domain.Team
	Err   error
	// spy: paging parameters received per call
	Tops  []int
	Skips []int
}

var _ domain.TeamReader = (*SpyTeamReader)(nil)

func (r *SpyTeamReader) ListTeams(_ context.Context, _ string, top, skip int) ([]domain.Team, error) {
	r.Tops = append(r.Tops, top)
	r.Skips = append(r.Skips, skip)
	if r.Err != nil {
		return nil, r.Err
	}
	call := len(r.Skips) - 1
	if call >= len(r.Pages) {
		return nil, nil
	}
	return r.Pages[call], nil
}

// ---------------------------------------------------------------------------
// SpyCommitReader
// ---------------------------------------------------------------------------

// SpyCommitReader implements domain.CommitReader as a configurable spy.
type SpyCommitReader struct {
	Commit domain.Commit
	Err    error
	// spy: commit ids that were requested
	CommitIDs []string
}

var _ domain.CommitReader = (*SpyCommitReader)(nil)

func (r *SpyCommitReader) GetCommit(_ context.Context, _, commitID string) (domain.Commit, error) {
	r.CommitIDs = append(r.CommitIDs, commitID)
	return r.Commit, r.Err
}

// ---------------------------------------------------------------------------
// SpyRepositoryReader
// ---------------------------------------------------------------------------

// SpyRepositoryReader implements domain.RepositoryReader as a configurable spy.
type SpyRepositoryReader struct {
	Repository domain.Repository
	Err        error
	// spy: repository ids that were requested
	RepoIDs []string
}

var _ domain.RepositoryReader = (*SpyRepositoryReader)(nil)

func (r *SpyRepositoryReader) GetRepository(_ context.Context, repoID string) (domain.Repository, error) {
	r.RepoIDs = append(r.RepoIDs, repoID)
	return r.Repository, r.Err
}

// ---------------------------------------------------------------------------
// SpyTagReader
// ---------------------------------------------------------------------------

// SpyTagReader implements domain.TagReader as a configurable spy.
type SpyTagReader struct {
	Tags []string
	Err  error
}

var _ domain.TagReader = (*SpyTagReader)(nil)

func (r *SpyTagReader) ListTags(_ context.Context, _ string) ([]string, error) {
	return r.Tags, r.Err
}
