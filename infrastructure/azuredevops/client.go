package azuredevops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rios0rios0/prforge/domain"
)

const apiVersion = "7.0"

// Client is a thin Azure DevOps REST client. It owns connection handling and
// auth; every method is a direct projection of one REST call.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	org        string
}

// Compile-time checks that the client satisfies the domain reader contracts.
var (
	_ domain.RefReader        = (*Client)(nil)
	_ domain.ItemReader       = (*Client)(nil)
	_ domain.PolicyReader     = (*Client)(nil)
	_ domain.TeamReader       = (*Client)(nil)
	_ domain.CommitReader     = (*Client)(nil)
	_ domain.RepositoryReader = (*Client)(nil)
	_ domain.TagReader        = (*Client)(nil)
)

// NewClient creates a new Azure DevOps client for the given organization
// (name or full URL) authenticated with a PAT.
func NewClient(organization, pat string) *Client {
	org := strings.TrimSuffix(organization, "/")
	if !strings.HasPrefix(org, "https://") && !strings.HasPrefix(org, "http://") {
		org = "https://dev.azure.com/" + org
	}

	return &Client{
		baseURL: org,
		token:   pat,
		org:     extractOrgName(org),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func extractOrgName(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && parts[0] != "" {
		return u.Host + "/" + parts[0]
	}
	return u.Host
}

// Organization returns the organization identifier.
func (c *Client) Organization() string {
	return c.org
}

// ListRefs returns the refs of a repository, optionally filtered by a branch
// name prefix. Prefix semantics are the provider's; refs come back in the
// provider's order.
func (c *Client) ListRefs(ctx context.Context, repoID, filter string) ([]domain.Ref, error) {
	endpoint := fmt.Sprintf("/_apis/git/repositories/%s/refs?api-version=%s", url.PathEscape(repoID), apiVersion)
	if filter != "" {
		endpoint += "&filter=" + url.QueryEscape("heads/"+filter)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []struct {
			Name     string `json:"name"`
			ObjectID string `json:"objectId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse refs response: %w", err)
	}

	refs := make([]domain.Ref, 0, len(result.Value))
	for _, ref := range result.Value {
		refs = append(refs, domain.Ref{Name: ref.Name, ObjectID: ref.ObjectID})
	}
	return refs, nil
}

// GetItemText fetches the raw content of a single file pinned to a branch
// (version type "branch", no recursion) and returns the response body as a
// stream. Not-found responses arrive as a serialized exception payload in
// the body of the stream rather than as an error; the caller classifies
// them. A nil stream means the provider returned nothing readable.
func (c *Client) GetItemText(ctx context.Context, repoID, path, branch string) (io.ReadCloser, error) {
	endpoint := fmt.Sprintf(
		"/_apis/git/repositories/%s/items?path=%s&recursionLevel=none&versionDescriptor.versionType=branch&versionDescriptor.version=%s&api-version=%s",
		url.PathEscape(repoID), url.QueryEscape(path), url.QueryEscape(branch), apiVersion,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		resp.Body.Close()
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300,
		resp.StatusCode == http.StatusNotFound:
		// 404 bodies carry the wrapped exception payload the resolver
		// distinguishes from file content.
		return resp.Body, nil
	default:
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
}

// ListPolicyConfigurations returns a project's policy configurations
// filtered server-side by policy type, in the provider's order.
func (c *Client) ListPolicyConfigurations(
	ctx context.Context,
	project string,
	policyType uuid.UUID,
) ([]domain.PolicyConfiguration, error) {
	endpoint := fmt.Sprintf("/%s/_apis/policy/configurations?policyType=%s&api-version=%s",
		url.PathEscape(project), policyType, apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []struct {
			ID         int  `json:"id"`
			IsEnabled  bool `json:"isEnabled"`
			IsBlocking bool `json:"isBlocking"`
			Settings   struct {
				Scope []struct {
					RepositoryID *uuid.UUID `json:"repositoryId"`
					RefName      string     `json:"refName"`
					MatchKind    string     `json:"matchKind"`
				} `json:"scope"`
				AllowNoFastForward bool `json:"allowNoFastForward"`
				AllowSquash        bool `json:"allowSquash"`
				AllowRebase        bool `json:"allowRebase"`
				AllowRebaseMerge   bool `json:"allowRebaseMerge"`
			} `json:"settings"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse policy configurations response: %w", err)
	}

	configurations := make([]domain.PolicyConfiguration, 0, len(result.Value))
	for _, cfg := range result.Value {
		scopes := make([]domain.PolicyScope, 0, len(cfg.Settings.Scope))
		for _, scope := range cfg.Settings.Scope {
			scopes = append(scopes, domain.PolicyScope{
				RepositoryID: scope.RepositoryID,
				RefName:      scope.RefName,
				MatchKind:    domain.MatchKind(scope.MatchKind),
			})
		}
		configurations = append(configurations, domain.PolicyConfiguration{
			ID:         cfg.ID,
			IsEnabled:  cfg.IsEnabled,
			IsBlocking: cfg.IsBlocking,
			Settings: domain.PolicySettings{
				Scope:              scopes,
				AllowNoFastForward: cfg.Settings.AllowNoFastForward,
				AllowSquash:        cfg.Settings.AllowSquash,
				AllowRebase:        cfg.Settings.AllowRebase,
				AllowRebaseMerge:   cfg.Settings.AllowRebaseMerge,
			},
		})
	}
	return configurations, nil
}

// ListTeams returns a single page of a project's teams.
func (c *Client) ListTeams(ctx context.Context, projectID string, top, skip int) ([]domain.Team, error) {
	endpoint := fmt.Sprintf("/_apis/projects/%s/teams?$top=%d&$skip=%d&api-version=%s",
		url.PathEscape(projectID), top, skip, apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse teams response: %w", err)
	}

	teams := make([]domain.Team, 0, len(result.Value))
	for _, team := range result.Value {
		teams = append(teams, domain.Team{
			ID:          team.ID,
			Name:        team.Name,
			Description: team.Description,
			URL:         team.URL,
		})
	}
	return teams, nil
}

// GetCommit returns the metadata of a single commit.
func (c *Client) GetCommit(ctx context.Context, repoID, commitID string) (domain.Commit, error) {
	endpoint := fmt.Sprintf("/_apis/git/repositories/%s/commits/%s?api-version=%s",
		url.PathEscape(repoID), url.PathEscape(commitID), apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Commit{}, err
	}

	type signature struct {
		Name  string    `json:"name"`
		Email string    `json:"email"`
		Date  time.Time `json:"date"`
	}
	var commit struct {
		CommitID  string    `json:"commitId"`
		Author    signature `json:"author"`
		Committer signature `json:"committer"`
		Comment   string    `json:"comment"`
		URL       string    `json:"url"`
	}
	if err := json.Unmarshal(resp, &commit); err != nil {
		return domain.Commit{}, fmt.Errorf("failed to parse commit response: %w", err)
	}

	return domain.Commit{
		CommitID:  commit.CommitID,
		Author:    domain.Signature(commit.Author),
		Committer: domain.Signature(commit.Committer),
		Comment:   commit.Comment,
		URL:       commit.URL,
	}, nil
}

// GetRepository returns repository metadata, including the default branch.
func (c *Client) GetRepository(ctx context.Context, repoID string) (domain.Repository, error) {
	endpoint := fmt.Sprintf("/_apis/git/repositories/%s?api-version=%s", url.PathEscape(repoID), apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Repository{}, err
	}

	var repo struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		DefaultBranch string `json:"defaultBranch"`
		RemoteURL     string `json:"remoteUrl"`
		Project       struct {
			Name string `json:"name"`
		} `json:"project"`
	}
	if err := json.Unmarshal(resp, &repo); err != nil {
		return domain.Repository{}, fmt.Errorf("failed to parse repository response: %w", err)
	}

	return domain.Repository{
		ID:            repo.ID,
		Name:          repo.Name,
		Project:       repo.Project.Name,
		DefaultBranch: repo.DefaultBranch,
		RemoteURL:     repo.RemoteURL,
	}, nil
}

// ListTags returns all tags in a repository, sorted by version (newest
// first).
func (c *Client) ListTags(ctx context.Context, repoID string) ([]string, error) {
	endpoint := fmt.Sprintf("/_apis/git/repositories/%s/refs?filter=tags&api-version=%s",
		url.PathEscape(repoID), apiVersion)

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Value []struct {
			Name string `json:"name"`
		} `json:"value"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse tags response: %w", err)
	}

	var tags []string
	for _, ref := range result.Value {
		tags = append(tags, strings.TrimPrefix(ref.Name, "refs/tags/"))
	}
	sortVersionsDescending(tags)
	return tags, nil
}

func (c *Client) authorize(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
