package ai

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	Title            string
	Body             string
	FileCount        int
	FilesText        string
	IssuesText       string
	ConversationText string
	UserMessage      string
	CurrentTitle     string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

const ChatIssueSystemPrompt = `You are an assistant that helps a developer write a clear GitHub issue through a short conversation.

# How you work
- Every turn, call update_preview with the best draft you have so far: title, body, issue_type, labels and priority.
- Keep fields you already filled in unless the user asks to change them.
- When the user says they are done, call signal_issue_ready with the complete draft.

# Chat replies
- Your text reply is a conversation, not a document. Never repeat the title, body, labels or priority in it; the user already sees them in the live preview.
- Ask at most one focused question per turn (steps to reproduce, expected behaviour, scope, acceptance criteria).
- Keep replies to one to three sentences.

# Body format
Write the body in GitHub markdown with short sections such as Summary, Steps to reproduce, Expected behaviour and Acceptance criteria, using only what the user told you.`

const ReadinessPromptTemplate = `Does the user want to create/finalize the GitHub issue NOW?

User message: "{{.UserMessage}}"

Common signals:
- Direct: "create it", "make the ticket", "I'm ready"
- Implicit: "looks good", "that's enough", repeated "I'll decide later"
- Dismissive: "no", "later", "skip" (when asked for more details)

Answer ONLY: yes or no`

const SummarizeIssuePromptTemplate = `Summarize this GitHub issue for a busy maintainer.

Title: {{.Title}}

Body:
{{.Body}}

Return ONLY a JSON object, no markdown fences:
{"issue_type": "bug | feature | enhancement | documentation | question", "summary": "two or three sentences on what is asked and why it matters"}`

const SummarizePRPromptTemplate = `Summarize this GitHub pull request for a reviewer.

Title: {{.Title}}

Description:
{{.Body}}

Changed files ({{.FileCount}}):
{{.FilesText}}

Return ONLY a JSON object, no markdown fences:
{"summary": "two or three sentences on the purpose of the change", "code_updates": "short description of the main code changes, grouped by area"}`

const PrioritizeIssuesPromptTemplate = `Order these GitHub issues from most to least urgent. Consider security, data loss, crashes and user impact first, then features, then chores.

{{.IssuesText}}

Return ONLY a JSON array with the issue IDs in priority order, for example [12, 7, 3]. Use the IDs exactly as given.`

const ExtractIssueDetailsPromptTemplate = `Extract the GitHub issue the user is describing in this conversation.

{{.ConversationText}}

Return ONLY a JSON object with these keys, using null for anything not discussed:
{"title": string, "body": string, "issue_type": "bug | feature | enhancement | documentation | question", "labels": [string], "priority": "low | medium | high | critical"}`

const FollowUpPromptTemplate = `
Provide a natural conversational follow-up to help refine a GitHub issue.

Current title: {{.CurrentTitle}}
Last user message: {{.UserMessage}}

Respond conversationally only. No questions if the user appears finished.
`
