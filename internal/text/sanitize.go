package text

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/regex"
)

const (
	bodyProbeRunes = 200
	// Below this share of the original length the reply was mostly leaked
	// structure and is reported as absent.
	minKeptRatio        = 0.2
	minLengthForAbsence = 50
)

// Sanitize strips draft content the model copied into its conversational
// reply. The second return value is false when so little is left that the
// caller should use a fallback message instead.
func Sanitize(message string, preview models.IssueDraft) (string, bool) {
	if strings.TrimSpace(message) == "" {
		return message, true
	}

	original := message

	for _, re := range fieldLabels {
		message = re.ReplaceAllString(message, "")
	}

	message = regex.BulletRun.ReplaceAllString(message, "")

	if preview.Title != "" {
		message = regex.TitleLine(preview.Title).ReplaceAllString(message, "\n")
	}
	if preview.Body != "" {
		probe := firstRunes(preview.Body, bodyProbeRunes)
		if idx := strings.LastIndex(message, probe); idx >= 0 {
			message = message[idx+len(probe):]
		}
	}

	message = regex.FieldHeading.ReplaceAllString(message, "")

	message = regex.ExcessBlankLines.ReplaceAllString(message, "\n\n")
	message = strings.TrimSpace(message)

	origLen := utf8.RuneCountInString(original)
	if float64(utf8.RuneCountInString(message)) < float64(origLen)*minKeptRatio && origLen > minLengthForAbsence {
		return "", false
	}
	return message, true
}

var fieldLabels = []*regexp.Regexp{
	regex.IssueTypeField,
	regex.TitleField,
	regex.DescriptionField,
	regex.RequirementsField,
	regex.PriorityField,
	regex.LabelsField,
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
