package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/sparkyb/github-report/internal/domain/entities"
	"github.com/sparkyb/github-report/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
	httpRetryMax = 3
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	token  string
	client *gh.Client
}

// NewGitHubProviderRepository creates a new GitHub provider with the given
// token. An empty token limits the provider to public repositories.
func NewGitHubProviderRepository(token string) repositories.ProviderRepository {
	client := gh.NewClient(newRetryHTTPClient())
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubProviderRepository{
		token:  token,
		client: client,
	}
}

// newRetryHTTPClient builds the transport underneath the API client.
// Transient network and server errors are retried with backoff; rate
// limit responses are passed through so they can abort the run with
// the server-suggested wait.
func newRetryHTTPClient() *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = httpRetryMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil // rate limits abort the run, retrying would stall it
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return retryClient.StandardClient()
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// ListRepositories lists all repositories of a GitHub organization or
// user account, following pagination to the last page.
func (p *GitHubProviderRepository) ListRepositories(
	ctx context.Context,
	owner string,
	kind entities.OwnerKind,
) ([]entities.Repository, error) {
	switch kind {
	case entities.OwnerUser:
		return p.listUserRepos(ctx, owner)
	case entities.OwnerOrg:
		return p.listOrgRepos(ctx, owner)
	default:
		repos, err := p.listOrgRepos(ctx, owner)
		if err != nil {
			// Fall back to the user endpoint only when the org does not
			// exist; auth and rate limit failures abort right away.
			var notFound *entities.NotFoundError
			if errors.As(err, &notFound) {
				return p.listUserRepos(ctx, owner)
			}
			return nil, err
		}
		return repos, nil
	}
}

func (p *GitHubProviderRepository) listOrgRepos(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, mapAPIError(err, org, "")
		}

		allRepos = appendRepos(allRepos, seen, repos)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitHubProviderRepository) listUserRepos(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
		Type:        "owner",
	}

	for {
		repos, resp, err := p.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, mapAPIError(err, user, "")
		}

		allRepos = appendRepos(allRepos, seen, repos)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// ListOwn lists the repositories of the authenticated user, private
// ones included.
func (p *GitHubProviderRepository) ListOwn(ctx context.Context) ([]entities.Repository, error) {
	if p.token == "" {
		return nil, &entities.AuthenticationError{
			Provider:   providerName,
			StatusCode: http.StatusUnauthorized,
		}
	}

	var allRepos []entities.Repository
	seen := make(map[string]struct{})
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, mapAPIError(err, "", "")
		}

		allRepos = appendRepos(allRepos, seen, repos)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// GetRepository fetches the metadata of a single repository. Unlike the
// list endpoints this also populates the subscriber count. An empty
// owner resolves to the authenticated user.
func (p *GitHubProviderRepository) GetRepository(
	ctx context.Context,
	owner, name string,
) (*entities.Repository, error) {
	if owner == "" {
		user, _, err := p.client.Users.Get(ctx, "")
		if err != nil {
			return nil, mapAPIError(err, owner, name)
		}
		owner = user.GetLogin()
	}

	repo, _, err := p.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, mapAPIError(err, owner, name)
	}

	mapped := mapRepository(repo)
	return &mapped, nil
}

// CloneURL returns an HTTPS clone URL, with the token embedded when one
// is configured so that private repositories can be cloned.
func (p *GitHubProviderRepository) CloneURL(repo entities.Repository) string {
	remoteURL := repo.CloneURL
	if remoteURL == "" {
		remoteURL = fmt.Sprintf(
			"https://github.com/%s.git",
			repo.FullName,
		)
	}
	if p.token == "" {
		return remoteURL
	}
	return strings.Replace(
		remoteURL,
		"https://",
		"https://x-access-token:"+p.token+"@",
		1,
	)
}

func appendRepos(
	dst []entities.Repository,
	seen map[string]struct{},
	repos []*gh.Repository,
) []entities.Repository {
	for _, r := range repos {
		mapped := mapRepository(r)
		if _, dup := seen[mapped.FullName]; dup {
			continue
		}
		seen[mapped.FullName] = struct{}{}
		dst = append(dst, mapped)
	}
	return dst
}

func mapRepository(r *gh.Repository) entities.Repository {
	visibility := r.GetVisibility()
	if visibility == "" {
		visibility = "public"
		if r.GetPrivate() {
			visibility = "private"
		}
	}

	return entities.Repository{
		ID:            r.GetID(),
		Name:          r.GetName(),
		Owner:         r.GetOwner().GetLogin(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Visibility:    visibility,
		DefaultBranch: r.GetDefaultBranch(),
		CloneURL:      r.GetCloneURL(),
		SSHURL:        r.GetSSHURL(),
		HTMLURL:       r.GetHTMLURL(),
		SizeKB:        int64(r.GetSize()),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetWatchersCount(),
		Subscribers:   r.GetSubscribersCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Fork:          r.GetFork(),
		Archived:      r.GetArchived(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		ProviderName:  providerName,
	}
}

// mapAPIError translates go-github errors into the domain error types
// the command layer switches on. Rate limits are checked before the
// generic status mapping because GitHub reports them as 403 too.
func mapAPIError(err error, owner, repo string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		retryAfter := time.Until(rateErr.Rate.Reset.Time).Round(time.Second)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &entities.RateLimitError{Provider: providerName, RetryAfter: retryAfter}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var retryAfter time.Duration
		if abuseErr.RetryAfter != nil {
			retryAfter = *abuseErr.RetryAfter
		}
		return &entities.RateLimitError{Provider: providerName, RetryAfter: retryAfter}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &entities.AuthenticationError{
				Provider:   providerName,
				StatusCode: respErr.Response.StatusCode,
			}
		case http.StatusNotFound:
			return &entities.NotFoundError{Owner: owner, Repo: repo}
		}
	}

	return fmt.Errorf("github api request failed: %w", err)
}
