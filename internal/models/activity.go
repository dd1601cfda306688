package models

import "time"

type Actor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
}

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type PullRequestLinks struct {
	URL     string `json:"url,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}

type RepositoryOwner struct {
	Login string `json:"login"`
}

// ActivityRepository is derived from the item's repository_url.
type ActivityRepository struct {
	Name     string          `json:"name"`
	FullName string          `json:"full_name"`
	Owner    RepositoryOwner `json:"owner"`
}

// ActivityItem is an open issue or pull request authored by the token owner.
// PullRequest is set only for pull requests.
type ActivityItem struct {
	ID            int64               `json:"id"`
	NodeID        string              `json:"node_id,omitempty"`
	Number        int                 `json:"number"`
	Title         string              `json:"title"`
	Body          string              `json:"body"`
	State         string              `json:"state"`
	URL           string              `json:"url"`
	HTMLURL       string              `json:"html_url"`
	RepositoryURL string              `json:"repository_url"`
	User          *Actor              `json:"user,omitempty"`
	Labels        []Label             `json:"labels"`
	Assignees     []Actor             `json:"assignees"`
	Comments      int                 `json:"comments"`
	Draft         bool                `json:"draft,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	PullRequest   *PullRequestLinks   `json:"pull_request,omitempty"`
	Repository    *ActivityRepository `json:"repository,omitempty"`
}

type ActivityRequest struct {
	Token string `json:"token" form:"token"`
}

type ActivityResponse struct {
	Items []ActivityItem `json:"items"`
}
