package domain

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// ZeroObjectID is the 40-character all-zero object id the provider uses to
// signal "no prior commit exists" in ref updates.
var ZeroObjectID = plumbing.ZeroHash.String()

// ShortBranchName strips ref-prefix conventions from a branch name
// ("refs/heads/main" -> "main"). An empty input stays empty, meaning
// "use the default branch".
func ShortBranchName(name string) string {
	if name == "" {
		return ""
	}
	return plumbing.ReferenceName(name).Short()
}

// QualifiedBranchName returns the fully qualified branch ref
// ("main" -> "refs/heads/main"). Already qualified names pass unchanged.
func QualifiedBranchName(name string) string {
	return plumbing.NewBranchReferenceName(ShortBranchName(name)).String()
}
