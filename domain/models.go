package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ref is a named pointer (branch or tag) within a repository, as reported
// by the hosting provider.
type Ref struct {
	Name     string // fully qualified, e.g. "refs/heads/main"
	ObjectID string
}

// BranchObject pairs a target branch name with the object id it should be
// created from. When no base ref exists, OldObjectID carries the all-zero
// sentinel and the branch starts from an initial commit.
type BranchObject struct {
	Name        string
	OldObjectID string
}

// Repository represents a Git repository hosted on Azure DevOps.
type Repository struct {
	ID            string
	Name          string
	Project       string
	DefaultBranch string
	RemoteURL     string
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	Date  time.Time
}

// Commit holds the metadata of a single commit.
type Commit struct {
	CommitID  string
	Author    Signature
	Committer Signature
	Comment   string
	URL       string
}

// Team represents a team within a project.
type Team struct {
	ID          string
	Name        string
	Description string
	URL         string
}

// MergeStrategy is the pull request merge strategy enforced by a branch
// policy. Values match the provider's REST representation.
type MergeStrategy string

const (
	MergeNoFastForward MergeStrategy = "noFastForward"
	MergeSquash        MergeStrategy = "squash"
	MergeRebase        MergeStrategy = "rebase"
	MergeRebaseMerge   MergeStrategy = "rebaseMerge"
)

// MatchKind classifies how a policy scope's RefName is compared against a
// candidate branch ref.
type MatchKind string

const (
	MatchExact         MatchKind = "exact"
	MatchPrefix        MatchKind = "prefix"
	MatchDefaultBranch MatchKind = "defaultBranch"
)

// Is compares match kinds ignoring case, since the provider is not
// consistent about casing in policy payloads.
func (k MatchKind) Is(other MatchKind) bool {
	return k == other || strings.EqualFold(string(k), string(other))
}

// PolicyScope is a single applicability rule of a branch policy. A nil
// RepositoryID means the scope applies to every repository in the project.
type PolicyScope struct {
	RepositoryID *uuid.UUID
	RefName      string
	MatchKind    MatchKind
}

// PolicySettings is the settings object of a branch policy configuration:
// the list of scopes it applies to plus the merge strategy flags.
type PolicySettings struct {
	Scope              []PolicyScope
	AllowNoFastForward bool
	AllowSquash        bool
	AllowRebase        bool
	AllowRebaseMerge   bool
}

// PolicyConfiguration represents a branch-protection rule configured in a
// project.
type PolicyConfiguration struct {
	ID         int
	IsEnabled  bool
	IsBlocking bool
	Settings   PolicySettings
}

// FileLookupOutcome classifies the result of fetching a file at a ref.
type FileLookupOutcome int

const (
	// FileFound means the drained body is the file content itself.
	FileFound FileLookupOutcome = iota
	// FileMissing means no item exists at the requested path.
	FileMissing
	// BranchMissing means the requested branch could not be resolved to a
	// commit.
	BranchMissing
)

// FileLookup is the tagged result of a file-content fetch. Content is only
// meaningful when Outcome is FileFound.
type FileLookup struct {
	Outcome FileLookupOutcome
	Content string
}

// Text returns the file content, or nil when the file or branch is absent.
func (l FileLookup) Text() *string {
	if l.Outcome != FileFound {
		return nil
	}
	return &l.Content
}
