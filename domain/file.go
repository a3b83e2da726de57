package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
)

// The provider signals certain not-found conditions by embedding a
// serialized exception in an otherwise successful response body. The typeKey
// discriminator is the only basis for telling such a payload apart from a
// file whose content happens to be JSON, and it must match exactly.
const (
	itemNotFoundTypeKey         = "GitItemNotFoundException"
	unresolvableToCommitTypeKey = "GitUnresolvableToCommitException"
)

// wrappedException is the shape of the provider's embedded error payload.
type wrappedException struct {
	TypeKey string `json:"typeKey"`
	Message string `json:"message"`
}

// FileContentResolver fetches file content at a branch and classifies the
// provider's dual-purpose response body.
type FileContentResolver struct {
	items ItemReader
}

// NewFileContentResolver creates a resolver backed by the given item reader.
func NewFileContentResolver(items ItemReader) *FileContentResolver {
	return &FileContentResolver{items: items}
}

// ResolveFile fetches the file at path on branchName and classifies the
// outcome:
//
//   - no readable stream: FileMissing
//   - body parses as a wrapped exception with typeKey
//     GitItemNotFoundException: FileMissing
//   - body parses as a wrapped exception with typeKey
//     GitUnresolvableToCommitException: BranchMissing
//   - anything else (non-JSON, JSON without the discriminator, unknown
//     typeKey): FileFound with the body as literal content
//
// Absence is a normal result; only transport failures surface as errors.
func (r *FileContentResolver) ResolveFile(
	ctx context.Context,
	repoID, path, branchName string,
) (FileLookup, error) {
	stream, err := r.items.GetItemText(ctx, repoID, path, ShortBranchName(branchName))
	if err != nil {
		return FileLookup{}, err
	}
	if stream == nil {
		return FileLookup{Outcome: FileMissing}, nil
	}
	defer stream.Close()

	raw, err := io.ReadAll(stream)
	if err != nil {
		return FileLookup{}, fmt.Errorf("failed to drain item stream: %w", err)
	}

	var payload wrappedException
	if unmarshalErr := json.Unmarshal(raw, &payload); unmarshalErr != nil {
		// Not an exception payload; the body is the file itself.
		return FileLookup{Outcome: FileFound, Content: string(raw)}, nil
	}

	switch payload.TypeKey {
	case itemNotFoundTypeKey:
		logger.Warnf("File %q not found on branch %q in repository %q", path, branchName, repoID)
		return FileLookup{Outcome: FileMissing}, nil
	case unresolvableToCommitTypeKey:
		logger.Warnf("Branch %q could not be resolved in repository %q", branchName, repoID)
		return FileLookup{Outcome: BranchMissing}, nil
	default:
		return FileLookup{Outcome: FileFound, Content: string(raw)}, nil
	}
}

// GetFileContent is a convenience wrapper around ResolveFile for callers
// that only distinguish present from absent. It returns nil when the file or
// the branch does not exist.
func (r *FileContentResolver) GetFileContent(
	ctx context.Context,
	repoID, path, branchName string,
) (*string, error) {
	lookup, err := r.ResolveFile(ctx, repoID, path, branchName)
	if err != nil {
		return nil, err
	}
	return lookup.Text(), nil
}
