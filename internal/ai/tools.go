package ai

import "github.com/thomas-vilte/ghdash/internal/models"

type ParamType string

const (
	ParamString ParamType = "string"
	ParamArray  ParamType = "array"
)

// ToolParam is one property of a tool's object-typed arguments. Array
// parameters always hold strings.
type ToolParam struct {
	Name string
	Type ParamType
	Enum []string
}

// ToolSpec describes a function the model may call.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ToolParam
	Required    []string
}

// JSONSchema renders the arguments as a JSON Schema object.
func (t ToolSpec) JSONSchema() map[string]any {
	props := make(map[string]any, len(t.Params))
	for _, p := range t.Params {
		prop := map[string]any{"type": string(p.Type)}
		if p.Type == ParamArray {
			prop["items"] = map[string]any{"type": "string"}
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   t.Required,
	}
}

func draftParams() []ToolParam {
	issueTypes := make([]string, 0, len(models.IssueTypes))
	for _, it := range models.IssueTypes {
		issueTypes = append(issueTypes, string(it))
	}
	priorities := make([]string, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		priorities = append(priorities, string(p))
	}
	return []ToolParam{
		{Name: "issue_type", Type: ParamString, Enum: issueTypes},
		{Name: "title", Type: ParamString},
		{Name: "body", Type: ParamString},
		{Name: "labels", Type: ParamArray},
		{Name: "priority", Type: ParamString, Enum: priorities},
	}
}

// UpdatePreviewTool pushes a partial draft to the live preview.
func UpdatePreviewTool() ToolSpec {
	return ToolSpec{
		Name:        models.ToolUpdatePreview,
		Description: "Update the live issue preview.",
		Params:      draftParams(),
		Required:    []string{"title", "body"},
	}
}

// SignalIssueReadyTool hands over the final draft.
func SignalIssueReadyTool() ToolSpec {
	return ToolSpec{
		Name:        models.ToolSignalIssueReady,
		Description: "Signal that the issue is ready to be created.",
		Params:      draftParams(),
		Required:    []string{"issue_type", "title", "body", "labels"},
	}
}

// DraftingTools is the tool set offered on every chat turn.
func DraftingTools() []ToolSpec {
	return []ToolSpec{UpdatePreviewTool(), SignalIssueReadyTool()}
}
