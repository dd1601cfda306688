package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	domainErrors "github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/regex"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

var _ vcs.GitHubClient = (*GitHubClient)(nil)

const (
	searchPageSize = 100
	defaultTimeout = 15 * time.Second
)

type PullRequestsService interface {
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type SearchService interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// graphQLTransport is the subset of *github.Client used to send GraphQL documents.
type graphQLTransport interface {
	NewRequest(method, urlStr string, body interface{}, opts ...github.RequestOption) (*http.Request, error)
	Do(ctx context.Context, req *http.Request, v interface{}) (*github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	searchService SearchService
	usersService  UsersService
	graphql       graphQLTransport
	graphqlURL    string
	timeout       time.Duration
}

type Option func(*GitHubClient)

// WithTimeout bounds every GitHub call made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *GitHubClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewGitHubClient builds a client for token. An empty baseURL targets
// github.com; anything else is treated as a GitHub Enterprise REST root.
func NewGitHubClient(token, baseURL string, opts ...Option) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	graphqlURL := "graphql"
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("github_base_url", baseURL)
		}
		graphqlURL = graphQLEndpoint(client.BaseURL.String())
	}

	ghc := &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		searchService: client.Search,
		usersService:  client.Users,
		graphql:       client,
		graphqlURL:    graphqlURL,
		timeout:       defaultTimeout,
	}
	for _, opt := range opts {
		opt(ghc)
	}
	return ghc, nil
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	searchService SearchService,
	usersService UsersService,
) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		searchService: searchService,
		usersService:  usersService,
		graphql:       github.NewClient(nil),
		graphqlURL:    "graphql",
		timeout:       defaultTimeout,
	}
}

// graphQLEndpoint maps an Enterprise REST root (".../api/v3/") onto its
// GraphQL endpoint (".../api/graphql").
func graphQLEndpoint(restBase string) string {
	if strings.HasSuffix(restBase, "/api/v3/") {
		return strings.TrimSuffix(restBase, "v3/") + "graphql"
	}
	return restBase + "graphql"
}

func (ghc *GitHubClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, ghc.timeout)
}

func splitRepo(repo string) (string, string, error) {
	if !regex.RepoSlug.MatchString(repo) {
		return "", "", domainErrors.ErrInvalidRepo.WithContext("repo", repo)
	}
	parts := strings.SplitN(repo, "/", 2)
	return parts[0], parts[1], nil
}

// handleGitHubError turns a failed REST call into a domain error. The
// upstream status and body are kept as the wrapped error.
func handleGitHubError(resp *github.Response, err error, operation string) error {
	var rateErr *github.RateLimitError
	if stderrors.As(err, &rateErr) {
		return domainErrors.ErrGitHubRateLimit.WithError(err).
			WithContext("operation", operation).
			WithContext("reset", rateErr.Rate.Reset.Time)
	}
	var abuseErr *github.AbuseRateLimitError
	if stderrors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.WithError(err).
			WithContext("operation", operation)
	}

	if resp == nil || resp.Response == nil {
		return fmt.Errorf("failed to %s: %w", operation, err)
	}

	upstream := &vcs.UpstreamError{StatusCode: resp.StatusCode, Body: errorBody(err)}
	var base *domainErrors.AppError
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = domainErrors.ErrGitHubTokenInvalid
	case http.StatusForbidden:
		base = domainErrors.ErrGitHubInsufficientPerms
	case http.StatusNotFound:
		base = domainErrors.ErrRepositoryNotFound
	case http.StatusTooManyRequests:
		base = domainErrors.ErrGitHubRateLimit
	default:
		return fmt.Errorf("failed to %s: %w", operation, upstream)
	}
	return base.WithError(upstream).
		WithContext("operation", operation).
		WithContext("status", resp.StatusCode)
}

// errorBody rebuilds the JSON error document GitHub sent.
func errorBody(err error) string {
	var errResp *github.ErrorResponse
	if !stderrors.As(err, &errResp) {
		return err.Error()
	}
	body, mErr := json.Marshal(struct {
		Message          string         `json:"message"`
		Errors           []github.Error `json:"errors,omitempty"`
		DocumentationURL string         `json:"documentation_url,omitempty"`
	}{errResp.Message, errResp.Errors, errResp.DocumentationURL})
	if mErr != nil {
		return errResp.Message
	}
	return string(body)
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", handleGitHubError(resp, err, "get authenticated user")
	}
	return user.GetLogin(), nil
}

func (ghc *GitHubClient) SearchOpenItemsByAuthor(ctx context.Context, login string) ([]models.ActivityItem, error) {
	log := logger.FromContext(ctx)
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("author:%s is:open", login)
	log.Debug("searching github issues", "query", query)

	result, resp, err := ghc.searchService.Issues(ctx, query, &github.SearchOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: searchPageSize},
	})
	if err != nil {
		return nil, handleGitHubError(resp, err, "search issues")
	}

	log.Debug("github search completed",
		"total_count", result.GetTotal(),
		"returned", len(result.Issues))

	items := make([]models.ActivityItem, 0, len(result.Issues))
	for _, issue := range result.Issues {
		items = append(items, toActivityItem(issue))
	}
	return items, nil
}

func toActivityItem(issue *github.Issue) models.ActivityItem {
	item := models.ActivityItem{
		ID:            issue.GetID(),
		NodeID:        issue.GetNodeID(),
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		State:         issue.GetState(),
		URL:           issue.GetURL(),
		HTMLURL:       issue.GetHTMLURL(),
		RepositoryURL: issue.GetRepositoryURL(),
		Comments:      issue.GetComments(),
		Draft:         issue.GetDraft(),
		CreatedAt:     issue.GetCreatedAt().Time,
		UpdatedAt:     issue.GetUpdatedAt().Time,
		Labels:        make([]models.Label, 0, len(issue.Labels)),
		Assignees:     make([]models.Actor, 0, len(issue.Assignees)),
	}
	if issue.User != nil {
		item.User = toActor(issue.User)
	}
	for _, l := range issue.Labels {
		item.Labels = append(item.Labels, models.Label{Name: l.GetName(), Color: l.GetColor()})
	}
	for _, a := range issue.Assignees {
		item.Assignees = append(item.Assignees, *toActor(a))
	}
	if issue.PullRequestLinks != nil {
		item.PullRequest = &models.PullRequestLinks{
			URL:     issue.PullRequestLinks.GetURL(),
			HTMLURL: issue.PullRequestLinks.GetHTMLURL(),
		}
	}
	return item
}

func toActor(u *github.User) *models.Actor {
	return &models.Actor{
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}
}

func (ghc *GitHubClient) ListPRFiles(ctx context.Context, repo string, number int, limit int) ([]models.PRFile, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	files, resp, err := ghc.prService.ListFiles(ctx, owner, name, number, &github.ListOptions{PerPage: limit})
	if err != nil {
		return nil, handleGitHubError(resp, err, "list pull request files")
	}

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	out := make([]models.PRFile, 0, len(files))
	for _, f := range files {
		out = append(out, models.PRFile{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Changes:   f.GetChanges(),
			Patch:     f.GetPatch(),
		})
	}
	return out, nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, repo string, req models.CreateIssueRequest) (*models.CreatedIssue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	labels := req.Labels
	if labels == nil {
		labels = []string{}
	}
	issueReq := &github.IssueRequest{
		Title:  github.Ptr(req.Title),
		Body:   github.Ptr(req.Body),
		Labels: &labels,
	}
	if len(req.Assignees) > 0 {
		issueReq.Assignees = &req.Assignees
	}

	issue, resp, err := ghc.issuesService.Create(ctx, owner, name, issueReq)
	if err != nil {
		logger.Error(ctx, "failed to create github issue", err, "repo", repo)
		return nil, handleGitHubError(resp, err, "create issue")
	}

	raw, err := json.Marshal(issue)
	if err != nil {
		return nil, fmt.Errorf("failed to encode created issue: %w", err)
	}
	return &models.CreatedIssue{
		Number:  issue.GetNumber(),
		HTMLURL: issue.GetHTMLURL(),
		NodeID:  issue.GetNodeID(),
		Raw:     raw,
	}, nil
}

func (ghc *GitHubClient) GetIssueNodeID(ctx context.Context, repo string, number int) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	issue, resp, err := ghc.issuesService.Get(ctx, owner, name, number)
	if err != nil {
		return "", handleGitHubError(resp, err, "get issue")
	}
	if issue.GetNodeID() == "" {
		return "", stderrors.New("could not get issue node ID")
	}
	return issue.GetNodeID(), nil
}
