package domain

import (
	"context"
)

// BranchResolver determines the base commit object a new branch should be
// created from.
type BranchResolver struct {
	refs RefReader
}

// NewBranchResolver creates a resolver backed by the given ref reader.
func NewBranchResolver(refs RefReader) *BranchResolver {
	return &BranchResolver{refs: refs}
}

// ResolveBranchObject resolves the tip object id of fromBranchName and pairs
// it with the qualified name of branchName. An empty fromBranchName means
// "look globally" (the ref lookup runs unfiltered). When no matching ref
// exists the result carries the all-zero sentinel id: the branch has no base
// yet and starts from an initial commit. That case is a normal result, not
// an error.
//
// When the provider returns more than one matching ref the first one wins;
// the tie-break is provider response order.
func (r *BranchResolver) ResolveBranchObject(
	ctx context.Context,
	repoID, branchName, fromBranchName string,
) (BranchObject, error) {
	refs, err := r.refs.ListRefs(ctx, repoID, ShortBranchName(fromBranchName))
	if err != nil {
		return BranchObject{}, err
	}

	object := BranchObject{
		Name:        QualifiedBranchName(branchName),
		OldObjectID: ZeroObjectID,
	}
	if len(refs) > 0 {
		object.OldObjectID = refs[0].ObjectID
	}
	return object, nil
}
