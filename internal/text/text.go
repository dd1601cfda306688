package text

import (
	"github.com/thomas-vilte/ghdash/internal/i18n"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/regex"
)

const maxHandleLength = 39

// ConversationalFallback is the reply used when the model's own text was
// missing or stripped away.
func ConversationalFallback(t *i18n.Translations, preview models.IssueDraft) string {
	if preview.Title != "" {
		return t.GetMessage("chat.fallback_with_title", 0, nil)
	}
	return t.GetMessage("chat.fallback_without_title", 0, nil)
}

// ExtractMentionedUsers returns the @handles in s, first occurrence order,
// without duplicates.
func ExtractMentionedUsers(s string) []string {
	users := []string{}
	if s == "" {
		return users
	}

	seen := make(map[string]struct{})
	for _, m := range regex.Mention.FindAllStringSubmatch(s, -1) {
		handle := m[1]
		if len(handle) > maxHandleLength {
			handle = handle[:maxHandleLength]
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		users = append(users, handle)
	}
	return users
}
