package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// The interfaces below are the read-only contracts this module consumes
// from the hosting provider's API client. Connection handling, auth,
// retries and pagination transport all belong to the implementation.

// RefReader lists refs within a repository. The filter is a provider-defined
// name prefix ("release/1" matches "refs/heads/release/1.0"); an empty
// filter lists every ref.
type RefReader interface {
	ListRefs(ctx context.Context, repoID, filter string) ([]Ref, error)
}

// ItemReader fetches raw file content pinned to a branch, single file only.
// A nil stream means the provider had nothing readable to return. The stream
// may carry a wrapped exception payload instead of file content; classifying
// it is the caller's concern. The caller owns the stream and must drain and
// close it.
type ItemReader interface {
	GetItemText(ctx context.Context, repoID, path, branch string) (io.ReadCloser, error)
}

// PolicyReader lists the policy configurations of a project, filtered
// server-side by policy type.
type PolicyReader interface {
	ListPolicyConfigurations(ctx context.Context, project string, policyType uuid.UUID) ([]PolicyConfiguration, error)
}

// TeamReader fetches a single page of a project's teams.
type TeamReader interface {
	ListTeams(ctx context.Context, projectID string, top, skip int) ([]Team, error)
}

// CommitReader fetches the metadata of a single commit.
type CommitReader interface {
	GetCommit(ctx context.Context, repoID, commitID string) (Commit, error)
}

// RepositoryReader fetches repository metadata, including the default
// branch.
type RepositoryReader interface {
	GetRepository(ctx context.Context, repoID string) (Repository, error)
}

// TagReader lists a repository's tag names sorted by semantic version,
// newest first.
type TagReader interface {
	ListTags(ctx context.Context, repoID string) ([]string, error)
}
