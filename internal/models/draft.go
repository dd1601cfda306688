package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type IssueType string

const (
	IssueTypeBug           IssueType = "bug"
	IssueTypeFeature       IssueType = "feature"
	IssueTypeEnhancement   IssueType = "enhancement"
	IssueTypeDocumentation IssueType = "documentation"
	IssueTypeQuestion      IssueType = "question"
)

var IssueTypes = []IssueType{
	IssueTypeBug, IssueTypeFeature, IssueTypeEnhancement, IssueTypeDocumentation, IssueTypeQuestion,
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// DraftField identifies one key of an IssueDraft.
type DraftField uint8

const (
	FieldTitle DraftField = 1 << iota
	FieldBody
	FieldIssueType
	FieldLabels
	FieldPriority
)

var draftFields = []struct {
	field DraftField
	key   string
}{
	{FieldTitle, "title"},
	{FieldBody, "body"},
	{FieldIssueType, "issue_type"},
	{FieldLabels, "labels"},
	{FieldPriority, "priority"},
}

// IssueDraft is the partially specified issue built up during a chat.
// It remembers which keys were ever supplied, independently of their values,
// so an explicitly empty field and a missing one stay distinguishable on the
// wire and during merges.
type IssueDraft struct {
	Title     string
	Body      string
	IssueType IssueType
	Labels    []string
	Priority  Priority

	present DraftField
}

// EmptyDraft has every key present with an empty value.
func EmptyDraft() IssueDraft {
	return IssueDraft{
		Labels:  []string{},
		present: FieldTitle | FieldBody | FieldIssueType | FieldLabels | FieldPriority,
	}
}

func (d IssueDraft) Has(f DraftField) bool {
	return d.present&f != 0
}

// IsEmpty reports whether no key is present at all.
func (d IssueDraft) IsEmpty() bool {
	return d.present == 0
}

func (d *IssueDraft) SetTitle(v string) {
	d.Title = v
	d.present |= FieldTitle
}

func (d *IssueDraft) SetBody(v string) {
	d.Body = v
	d.present |= FieldBody
}

func (d *IssueDraft) SetIssueType(v IssueType) {
	d.IssueType = v
	d.present |= FieldIssueType
}

func (d *IssueDraft) SetLabels(v []string) {
	d.Labels = append([]string{}, v...)
	d.present |= FieldLabels
}

func (d *IssueDraft) SetPriority(v Priority) {
	d.Priority = v
	d.present |= FieldPriority
}

// Clone returns a deep copy.
func (d IssueDraft) Clone() IssueDraft {
	c := d
	if d.Labels != nil {
		c.Labels = append([]string{}, d.Labels...)
	}
	return c
}

func (d IssueDraft) truthy(f DraftField) bool {
	switch f {
	case FieldTitle:
		return d.Title != ""
	case FieldBody:
		return d.Body != ""
	case FieldIssueType:
		return d.IssueType != ""
	case FieldLabels:
		return len(d.Labels) > 0
	case FieldPriority:
		return d.Priority != ""
	}
	return false
}

func (d *IssueDraft) copyField(from IssueDraft, f DraftField) {
	switch f {
	case FieldTitle:
		d.SetTitle(from.Title)
	case FieldBody:
		d.SetBody(from.Body)
	case FieldIssueType:
		d.SetIssueType(from.IssueType)
	case FieldLabels:
		d.SetLabels(from.Labels)
	case FieldPriority:
		d.SetPriority(from.Priority)
	}
}

// MergeDraft folds update into existing and returns the result. A non-empty
// incoming value always wins. An empty incoming value only fills a key the
// existing draft does not have yet, so known values are never erased.
// Neither argument is modified.
func MergeDraft(existing, update IssueDraft) IssueDraft {
	merged := existing.Clone()
	for _, df := range draftFields {
		if !update.Has(df.field) {
			continue
		}
		if update.truthy(df.field) || !existing.Has(df.field) {
			merged.copyField(update, df.field)
		}
	}
	return merged
}

// Keys lists the present keys in wire order.
func (d IssueDraft) Keys() []string {
	keys := make([]string, 0, len(draftFields))
	for _, df := range draftFields {
		if d.Has(df.field) {
			keys = append(keys, df.key)
		}
	}
	return keys
}

func (d IssueDraft) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, df := range draftFields {
		if !d.Has(df.field) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, _ := json.Marshal(df.key)
		buf.Write(key)
		buf.WriteByte(':')

		var value any
		switch df.field {
		case FieldTitle:
			value = d.Title
		case FieldBody:
			value = d.Body
		case FieldIssueType:
			if d.IssueType != "" {
				value = d.IssueType
			}
		case FieldLabels:
			if d.Labels == nil {
				value = []string{}
			} else {
				value = d.Labels
			}
		case FieldPriority:
			if d.Priority != "" {
				value = d.Priority
			}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON marks every known key found in the object as present, null
// values included. Unknown keys are ignored.
func (d *IssueDraft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*d = IssueDraft{}
		return nil
	}

	var out IssueDraft
	for _, df := range draftFields {
		value, ok := raw[df.key]
		if !ok {
			continue
		}
		switch df.field {
		case FieldTitle, FieldBody, FieldIssueType, FieldPriority:
			var s *string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("draft field %q: %w", df.key, err)
			}
			v := ""
			if s != nil {
				v = *s
			}
			switch df.field {
			case FieldTitle:
				out.SetTitle(v)
			case FieldBody:
				out.SetBody(v)
			case FieldIssueType:
				out.SetIssueType(IssueType(v))
			case FieldPriority:
				out.SetPriority(Priority(v))
			}
		case FieldLabels:
			var labels []string
			if err := json.Unmarshal(value, &labels); err != nil {
				return fmt.Errorf("draft field %q: %w", df.key, err)
			}
			out.SetLabels(labels)
		}
	}
	*d = out
	return nil
}
