package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/thomas-vilte/ghdash/internal/ai"
	"github.com/thomas-vilte/ghdash/internal/config"
	domainErrors "github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/models"
)

const ProviderName = "gemini"

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Provider serves chat requests with Gemini function calling.
type Provider struct {
	client     *genai.Client
	model      string
	generateFn generateFunc
}

var _ ai.ChatModel = (*Provider)(nil)

func NewProvider(ctx context.Context, cfg *config.Config) (*Provider, error) {
	if cfg.AI.GeminiAPIKey == "" {
		return nil, domainErrors.ErrModelKeyMissing.WithContext("provider", ProviderName)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.AI.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	p := &Provider{
		client: client,
		model:  cfg.AI.Model,
	}
	p.generateFn = p.defaultGenerate
	return p, nil
}

func (p *Provider) defaultGenerate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return p.client.Models.GenerateContent(ctx, model, contents, cfg)
}

func (p *Provider) Generate(ctx context.Context, req ai.Request) (*models.ModelResponse, error) {
	contents, system := toContents(req.Messages)

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: system,
	}
	if req.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(req.MaxTokens)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, spec := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  toSchema(spec),
			})
		}
		genConfig.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
		if req.ForcedTool != "" {
			genConfig.ToolConfig = &genai.ToolConfig{
				FunctionCallingConfig: &genai.FunctionCallingConfig{
					Mode:                 genai.FunctionCallingConfigModeAny,
					AllowedFunctionNames: []string{req.ForcedTool},
				},
			}
		}
	}

	resp, err := p.generateFn(ctx, p.model, contents, genConfig)
	if err != nil {
		return nil, classifyError(err)
	}
	return toModelResponse(resp)
}

func classifyError(err error) error {
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "resource exhausted") {
		return domainErrors.ErrAIGeneration.WithError(err).
			WithSuggestion("Gemini quota exhausted, wait for it to reset")
	}
	if strings.Contains(errMsg, "api key") ||
		strings.Contains(errMsg, "unauthorized") {
		return domainErrors.ErrModelKeyMissing.WithError(err).
			WithSuggestion("Check that GEMINI_API_KEY is valid")
	}
	return domainErrors.ErrAIGeneration.WithError(err)
}

// toContents splits system turns into the system instruction and maps the
// rest onto user and model contents.
func toContents(turns []models.ConversationTurn) ([]*genai.Content, *genai.Content) {
	var systemParts []string
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, turn.Content)
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}
	return contents, system
}

func toSchema(spec ai.ToolSpec) *genai.Schema {
	props := make(map[string]*genai.Schema, len(spec.Params))
	for _, param := range spec.Params {
		switch param.Type {
		case ai.ParamArray:
			props[param.Name] = &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			}
		default:
			s := &genai.Schema{Type: genai.TypeString}
			if len(param.Enum) > 0 {
				s.Format = "enum"
				s.Enum = param.Enum
			}
			props[param.Name] = s
		}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   spec.Required,
	}
}

func toModelResponse(resp *genai.GenerateContentResponse) (*models.ModelResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, domainErrors.ErrEmptyAIResponse.WithContext("provider", ProviderName)
	}

	out := &models.ModelResponse{Usage: extractUsage(resp)}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, domainErrors.ErrInvalidAIOutput.WithError(err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				id = fmt.Sprintf("call_%d", len(out.ToolCalls))
			}
			out.ToolCalls = append(out.ToolCalls, models.ToolCall{
				ID:        id,
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
			continue
		}
		text.WriteString(part.Text)
	}
	out.Text = text.String()
	return out, nil
}
