package models

import "encoding/json"

type SummarizeRequest struct {
	ID    ItemID `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	IsPR  bool   `json:"is_pr"`
	PRURL string `json:"pr_url"`
	Repo  string `json:"repo"`
}

// PRFile is one changed file of a pull request, patch already truncated.
type PRFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Patch     string `json:"patch"`
}

// SummaryResponse is what /api/summarize returns and what the cache stores.
// Summary is whatever JSON the model produced, or its raw text as a JSON
// string when the output was not JSON.
type SummaryResponse struct {
	Summary        json.RawMessage `json:"summary"`
	Files          []PRFile        `json:"files"`
	MentionedUsers []string        `json:"mentioned_users"`
}

// IssueRef is the minimal issue shape used for prioritization.
type IssueRef struct {
	ID    ItemID `json:"id"`
	Title string `json:"title"`
}

type PrioritizeRequest struct {
	Issues []IssueRef `json:"issues"`
}

type PrioritizeResponse struct {
	Priorities []ItemID `json:"priorities"`
}
