package regex

import "regexp"

var (
	// Structured "Field: value" lines that leak into chat replies
	IssueTypeField    = regexp.MustCompile(`(?i)Issue\s+Type\s*:\s*[^\n]+`)
	TitleField        = regexp.MustCompile(`(?i)Title\s*:\s*[^\n]+`)
	DescriptionField  = regexp.MustCompile(`(?i)Description\s*:\s*[^\n]+`)
	RequirementsField = regexp.MustCompile(`(?i)Requirements\s*:\s*`)
	PriorityField     = regexp.MustCompile(`(?i)Priority\s*:\s*[^\n]+`)
	LabelsField       = regexp.MustCompile(`(?i)Labels\s*:\s*[^\n]+`)

	// Three or more consecutive bullet lines
	BulletRun = regexp.MustCompile(`(?m)(?:^|\n)[\s]*[-*•]\s+[^\n]+(?:\n[\s]*[-*•]\s+[^\n]+){2,}`)

	// Markdown headings named after draft fields
	FieldHeading = regexp.MustCompile(`(?i)#{1,3}\s*(Issue Type|Title|Description|Requirements|Priority)\s*\n`)

	ExcessBlankLines = regexp.MustCompile(`\n\s*\n\s*\n+`)

	// GitHub handles: alphanumerics with single inner hyphens. The 39 char
	// cap is applied by the caller since RE2 has no lookahead.
	Mention = regexp.MustCompile(`@([a-zA-Z0-9](?:-?[a-zA-Z0-9])*)`)

	// AI and JSON parsing
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")

	// Projects v2 field values
	ISODate           = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	SingleSelectID    = regexp.MustCompile(`^PVTSSOO_`)
	IterationOptionID = regexp.MustCompile(`^PVTIO_`)

	// Pull request URLs, HTML (/pull/N) or API (/pulls/N)
	PullNumber = regexp.MustCompile(`/pulls?/(\d+)`)

	// owner/name repository slug
	RepoSlug = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

// TitleLine matches a standalone line holding exactly title.
func TitleLine(title string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\n)\s*` + regexp.QuoteMeta(title) + `\s*(?:\n|$)`)
}
