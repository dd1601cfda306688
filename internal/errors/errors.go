package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeValidation    ErrorType = "VALIDATION"
	TypeCache         ErrorType = "CACHE"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches sentinels by type and message so wrapped copies still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// TypeOf returns the category of the first AppError in the chain, or TypeInternal.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// Configuration errors
var (
	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
				WithSuggestion("Set GITHUB_API in your environment or .env file")

	ErrModelKeyMissing = NewAppError(TypeConfiguration, "language model API key is missing", nil).
				WithSuggestion("Set OPENAI_API_KEY (or GEMINI_API_KEY when ai.provider is gemini)")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "configuration is invalid", nil).
				WithSuggestion("Review config.yaml and the environment overrides")

	ErrConfigRead = NewAppError(TypeConfiguration, "failed to read configuration file", nil).
			WithSuggestion("Check the path passed to --config and its YAML syntax")
)

// Validation errors
var (
	ErrEmptyMessage = NewAppError(TypeValidation, "message is empty", nil)

	ErrInvalidRepo = NewAppError(TypeValidation, "repository must be in owner/name form", nil)

	ErrInvalidRequest = NewAppError(TypeValidation, "invalid request body", nil)
)

// GitHub/VCS specific errors
var (
	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository name and access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs 'repo' and 'project' scopes.\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes before retrying")

	ErrGraphQL = NewAppError(TypeVCS, "GitHub GraphQL query failed", nil)

	ErrCreateIssue = NewAppError(TypeVCS, "failed to create issue", nil).
			WithSuggestion("Check your GitHub token has 'repo' permissions")

	ErrInvalidPRURL = NewAppError(TypeVCS, "pull request number not found in URL", nil)
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrInvalidAIOutput = NewAppError(TypeAI, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrEmptyAIResponse = NewAppError(TypeAI, "AI returned no choices", nil)
)

// Cache errors
var (
	ErrCacheRead  = NewAppError(TypeCache, "failed to read summary cache", nil)
	ErrCacheWrite = NewAppError(TypeCache, "failed to write summary cache", nil)
)
