package ai

import (
	"encoding/json"
	"strings"

	"github.com/thomas-vilte/ghdash/internal/regex"
)

// ParseJSONOutput returns the JSON value in a model reply. A surrounding
// markdown code fence is tolerated. ok is false when the reply is not JSON.
func ParseJSONOutput(text string) (value json.RawMessage, ok bool) {
	candidate := strings.TrimSpace(text)
	if m := regex.MarkdownJSONBlock.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	if candidate == "" || !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// TextAsJSON encodes free text as a JSON string value.
func TextAsJSON(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
