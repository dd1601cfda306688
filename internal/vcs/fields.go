package vcs

import (
	"bytes"
	"encoding/json"

	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/regex"
)

// FormatFieldValue coerces a raw JSON field value into the
// ProjectV2FieldValue input object.
func FormatFieldValue(raw json.RawMessage) models.ProjectFieldValue {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		switch {
		case regex.SingleSelectID.MatchString(s):
			return models.ProjectFieldValue{SingleSelectOptionID: &s}
		case regex.IterationOptionID.MatchString(s):
			return models.ProjectFieldValue{IterationID: &s}
		case regex.ISODate.MatchString(s):
			return models.ProjectFieldValue{Date: &s}
		default:
			return models.ProjectFieldValue{Text: &s}
		}
	}

	var n float64
	if !bytes.Equal(raw, []byte("null")) && json.Unmarshal(raw, &n) == nil {
		return models.ProjectFieldValue{Number: &n}
	}

	// Booleans count as the numbers 1 and 0.
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		if b {
			n = 1
		}
		return models.ProjectFieldValue{Number: &n}
	}

	text := string(raw)
	return models.ProjectFieldValue{Text: &text}
}
