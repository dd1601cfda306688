package models

type Project struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Number           int     `json:"number"`
	ShortDescription *string `json:"shortDescription"`
}

type ProjectFieldOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectIteration struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	Duration  int    `json:"duration"`
}

type ProjectIterationConfiguration struct {
	Iterations []ProjectIteration `json:"iterations"`
}

// ProjectField covers plain, single select and iteration fields. Options and
// Configuration are only set for the last two.
type ProjectField struct {
	ID            string                         `json:"id"`
	Name          string                         `json:"name"`
	DataType      string                         `json:"dataType"`
	Options       []ProjectFieldOption           `json:"options,omitempty"`
	Configuration *ProjectIterationConfiguration `json:"configuration,omitempty"`
}

type ProjectsRequest struct {
	Repo string `json:"repo"`
}

type ProjectFieldsRequest struct {
	ProjectID string `json:"project_id"`
}

// ProjectFieldValue is the ProjectV2FieldValue input object; exactly one
// member is set.
type ProjectFieldValue struct {
	Text                 *string  `json:"text,omitempty"`
	Number               *float64 `json:"number,omitempty"`
	Date                 *string  `json:"date,omitempty"`
	SingleSelectOptionID *string  `json:"singleSelectOptionId,omitempty"`
	IterationID          *string  `json:"iterationId,omitempty"`
}
