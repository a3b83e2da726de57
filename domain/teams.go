package domain

import (
	"context"
)

// teamPageSize is the fixed page size used when walking a project's teams.
const teamPageSize = 100

// TeamLister accumulates every team of a project across pages.
type TeamLister struct {
	teams TeamReader
}

// NewTeamLister creates a lister backed by the given team reader.
func NewTeamLister(teams TeamReader) *TeamLister {
	return &TeamLister{teams: teams}
}

// ListAllTeams fetches the project's teams page by page (skip = 0, 100,
// 200, ...) and concatenates them in provider order. Pagination stops after
// the first page shorter than the page size. No dedup, no sorting.
func (l *TeamLister) ListAllTeams(ctx context.Context, projectID string) ([]Team, error) {
	var all []Team
	for skip := 0; ; skip += teamPageSize {
		page, err := l.teams.ListTeams(ctx, projectID, teamPageSize, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < teamPageSize {
			break
		}
	}
	return all, nil
}
