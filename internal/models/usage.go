package models

// TokenUsage is what a single model call consumed, as reported by the provider.
type TokenUsage struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	Model        string `json:"model,omitempty"`
	DurationMs   int64  `json:"duration_ms,omitempty"`
}

// LogArgs flattens the usage into slog key/value pairs.
func (u *TokenUsage) LogArgs() []any {
	if u == nil {
		return nil
	}
	return []any{
		"model", u.Model,
		"input_tokens", u.InputTokens,
		"output_tokens", u.OutputTokens,
		"duration_ms", u.DurationMs,
	}
}
