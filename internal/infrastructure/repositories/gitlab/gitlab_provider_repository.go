package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
	kbFactor     = 1024
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
type GitLabProviderRepository struct {
	token  string
	client *gl.Client
}

// NewGitLabProviderRepository creates a new GitLab provider with the given token.
func NewGitLabProviderRepository(token string) repositories.ProviderRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &GitLabProviderRepository{token: token, client: nil}
	}
	return &GitLabProviderRepository{
		token:  token,
		client: client,
	}
}

func (p *GitLabProviderRepository) Name() string { return providerName }

// ListRepositories lists all projects of a GitLab group (subgroups
// included) or user, following pagination to the last page.
func (p *GitLabProviderRepository) ListRepositories(
	ctx context.Context,
	owner string,
	kind entities.OwnerKind,
) ([]entities.Repository, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	switch kind {
	case entities.OwnerUser:
		return p.listUserProjects(ctx, owner)
	case entities.OwnerOrg:
		return p.listGroupProjects(ctx, owner)
	default:
		repos, err := p.listGroupProjects(ctx, owner)
		if err != nil {
			// Fall back to the user endpoint only when the group does
			// not exist; auth and rate limit failures abort right away.
			var notFound *entities.NotFoundError
			if errors.As(err, &notFound) {
				return p.listUserProjects(ctx, owner)
			}
			return nil, err
		}
		return repos, nil
	}
}

func (p *GitLabProviderRepository) listGroupProjects(
	ctx context.Context,
	group string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gl.ListGroupProjectsOptions{
		ListOptions:      gl.ListOptions{PerPage: perPage},
		IncludeSubGroups: gl.Ptr(true),
		Statistics:       gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Groups.ListGroupProjects(
			group, opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, mapAPIError(err, group, "")
		}

		allRepos = appendProjects(allRepos, seen, projects)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitLabProviderRepository) listUserProjects(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Statistics:  gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Projects.ListUserProjects(
			user, opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, mapAPIError(err, user, "")
		}

		allRepos = appendProjects(allRepos, seen, projects)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// ListOwn lists the projects owned by the authenticated user.
func (p *GitLabProviderRepository) ListOwn(ctx context.Context) ([]entities.Repository, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}
	if p.token == "" {
		return nil, &entities.AuthenticationError{
			Provider:   providerName,
			StatusCode: http.StatusUnauthorized,
		}
	}

	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Owned:       gl.Ptr(true),
		Statistics:  gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Projects.ListProjects(
			opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, mapAPIError(err, "", "")
		}

		allRepos = appendProjects(allRepos, seen, projects)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// GetRepository fetches a single project by its "owner/name" path. An
// empty owner resolves to the authenticated user.
func (p *GitLabProviderRepository) GetRepository(
	ctx context.Context,
	owner, name string,
) (*entities.Repository, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	if owner == "" {
		user, _, err := p.client.Users.CurrentUser(gl.WithContext(ctx))
		if err != nil {
			return nil, mapAPIError(err, owner, name)
		}
		owner = user.Username
	}

	pid := owner + "/" + name
	project, _, err := p.client.Projects.GetProject(
		pid,
		&gl.GetProjectOptions{Statistics: gl.Ptr(true)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, mapAPIError(err, owner, name)
	}

	mapped := mapProject(project)
	return &mapped, nil
}

// CloneURL returns an HTTPS clone URL, with the token embedded when one
// is configured so that private projects can be cloned.
func (p *GitLabProviderRepository) CloneURL(repo entities.Repository) string {
	remoteURL := repo.CloneURL
	if remoteURL == "" {
		remoteURL = fmt.Sprintf(
			"https://gitlab.com/%s.git",
			repo.FullName,
		)
	}
	if p.token == "" {
		return remoteURL
	}
	return strings.Replace(
		remoteURL,
		"https://",
		"https://oauth2:"+p.token+"@",
		1,
	)
}

func appendProjects(
	dst []entities.Repository,
	seen map[string]struct{},
	projects []*gl.Project,
) []entities.Repository {
	for _, proj := range projects {
		mapped := mapProject(proj)
		if _, dup := seen[mapped.FullName]; dup {
			continue
		}
		seen[mapped.FullName] = struct{}{}
		dst = append(dst, mapped)
	}
	return dst
}

func mapProject(proj *gl.Project) entities.Repository {
	owner := ""
	if proj.Namespace != nil {
		owner = proj.Namespace.FullPath
	}

	repo := entities.Repository{
		ID:            int64(proj.ID),
		Name:          proj.Path,
		Owner:         owner,
		FullName:      proj.PathWithNamespace,
		Description:   proj.Description,
		Visibility:    string(proj.Visibility),
		DefaultBranch: proj.DefaultBranch,
		CloneURL:      proj.HTTPURLToRepo,
		SSHURL:        proj.SSHURLToRepo,
		HTMLURL:       proj.WebURL,
		Stars:         int(proj.StarCount),
		Forks:         int(proj.ForksCount),
		OpenIssues:    int(proj.OpenIssuesCount),
		Fork:          proj.ForkedFromProject != nil,
		Archived:      proj.Archived,
		ProviderName:  providerName,
	}

	// Project statistics come in bytes; the report's size column is
	// KiB across providers.
	if proj.Statistics != nil {
		repo.SizeKB = proj.Statistics.RepositorySize / kbFactor
	}

	if proj.CreatedAt != nil {
		repo.CreatedAt = *proj.CreatedAt
	}
	if proj.LastActivityAt != nil {
		repo.UpdatedAt = *proj.LastActivityAt
		repo.PushedAt = *proj.LastActivityAt
	}

	return repo
}

// mapAPIError translates client-go errors into the domain error types
// the command layer switches on.
func mapAPIError(err error, owner, repo string) error {
	var respErr *gl.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusTooManyRequests:
			return &entities.RateLimitError{
				Provider:   providerName,
				RetryAfter: retryAfter(respErr.Response),
			}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &entities.AuthenticationError{
				Provider:   providerName,
				StatusCode: respErr.Response.StatusCode,
			}
		case http.StatusNotFound:
			return &entities.NotFoundError{Owner: owner, Repo: repo}
		}
	}

	return fmt.Errorf("gitlab api request failed: %w", err)
}

// retryAfter reads the server-suggested wait from a throttled response.
func retryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	if header := resp.Header.Get("RateLimit-Reset"); header != "" {
		if unix, err := strconv.ParseInt(header, 10, 64); err == nil {
			if wait := time.Until(time.Unix(unix, 0)).Round(time.Second); wait > 0 {
				return wait
			}
		}
	}
	return 0
}
