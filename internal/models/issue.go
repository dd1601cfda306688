package models

import "encoding/json"

type CreateIssueRequest struct {
	Repo      string   `json:"repo"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
}

// CreateIssueWithProjectRequest also attaches the new issue to a Projects v2
// board. FieldValues maps project field ids to raw JSON values.
type CreateIssueWithProjectRequest struct {
	CreateIssueRequest
	ProjectID   string                     `json:"project_id"`
	FieldValues map[string]json.RawMessage `json:"field_values"`
}

// CreatedIssue is the part of the GitHub response the dashboard needs, plus
// the full upstream payload.
type CreatedIssue struct {
	Number  int
	HTMLURL string
	NodeID  string
	Raw     json.RawMessage
}

type CreateIssueResult struct {
	Success        bool            `json:"success"`
	IssueURL       string          `json:"issue_url,omitempty"`
	IssueNumber    int             `json:"issue_number,omitempty"`
	IssueData      json.RawMessage `json:"issue_data,omitempty"`
	Error          string          `json:"error,omitempty"`
	ProjectWarning string          `json:"project_warning,omitempty"`
}
