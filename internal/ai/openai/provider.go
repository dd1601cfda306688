package openai

import (
	"context"
	stderrors "errors"
	"net/http"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/models"
)

const ProviderName = "openai"

// Provider talks to the Chat Completions API, or any compatible endpoint
// when a base URL is configured.
type Provider struct {
	client openaisdk.Client
	model  string
}

var _ ai.ChatModel = (*Provider)(nil)

func NewProvider(cfg *config.Config, opts ...option.RequestOption) (*Provider, error) {
	if cfg.AI.OpenAIAPIKey == "" {
		return nil, errors.ErrModelKeyMissing.WithContext("provider", ProviderName)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.AI.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AI.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.AI.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Provider{
		client: openaisdk.NewClient(reqOpts...),
		model:  cfg.AI.Model,
	}, nil
}

func (p *Provider) Generate(ctx context.Context, req ai.Request) (*models.ModelResponse, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(p.model),
		Messages: toMessages(req.Messages),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		params.Tools = toTools(req.Tools)
		params.ParallelToolCalls = openaisdk.Bool(false)
		if req.ForcedTool != "" {
			params.ToolChoice = openaisdk.ChatCompletionToolChoiceOptionUnionParam{
				OfChatCompletionNamedToolChoice: &openaisdk.ChatCompletionNamedToolChoiceParam{
					Function: openaisdk.ChatCompletionNamedToolChoiceFunctionParam{Name: req.ForcedTool},
				},
			}
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.ErrEmptyAIResponse.WithContext("provider", ProviderName)
	}

	msg := resp.Choices[0].Message
	out := &models.ModelResponse{
		Text: msg.Content,
		Usage: &models.TokenUsage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, models.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func toMessages(turns []models.ConversationTurn) []openaisdk.ChatCompletionMessageParamUnion {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case models.RoleSystem:
			msgs = append(msgs, openaisdk.SystemMessage(turn.Content))
		case models.RoleAssistant:
			msgs = append(msgs, openaisdk.ChatCompletionMessageParamOfAssistant(turn.Content))
		default:
			msgs = append(msgs, openaisdk.UserMessage(turn.Content))
		}
	}
	return msgs
}

func toTools(specs []ai.ToolSpec) []openaisdk.ChatCompletionToolParam {
	tools := make([]openaisdk.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, openaisdk.ChatCompletionToolParam{
			Function: openaisdk.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openaisdk.String(spec.Description),
				Parameters:  openaisdk.FunctionParameters(spec.JSONSchema()),
			},
		})
	}
	return tools
}

func classifyError(err error) error {
	var apiErr *openaisdk.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return errors.ErrModelKeyMissing.WithError(err).
				WithContext("status", apiErr.StatusCode).
				WithSuggestion("Check that OPENAI_API_KEY is valid")
		case http.StatusTooManyRequests:
			return errors.ErrAIGeneration.WithError(err).
				WithContext("status", apiErr.StatusCode).
				WithSuggestion("Rate limited by the model provider, wait and retry")
		}
		return errors.ErrAIGeneration.WithError(err).WithContext("status", apiErr.StatusCode)
	}
	return errors.ErrAIGeneration.WithError(err)
}
