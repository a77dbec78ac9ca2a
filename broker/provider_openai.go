package broker

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider is the native OpenAI provider. For models whose
// TemperaturePolicy is Fixed (reasoning models: o3, o3-mini), temperature
// is omitted from the wire request entirely (§4.5) rather than sent and
// rejected.
//
// Grounded on agent/adapters/openai_adapter.go; baseURL empty selects
// the standard OpenAI endpoint.
type OpenAIProvider struct {
	baseProvider
	client openai.Client
}

func NewOpenAIProvider(apiKey string, catalog *Catalog, restrictions *RestrictionService, priority int) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		baseProvider: baseProvider{
			ptype: ProviderOpenAI, friendlyName: "OpenAI", priority: priority,
			catalog: catalog, restrictions: restrictions,
		},
		client: client,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	return WithTransportRetry(ctx, 3, func(ctx context.Context) (GenerateResponse, error) {
		caps, ok := p.Capabilities(req.CanonicalName)
		if !ok {
			return GenerateResponse{}, &ToolError{Kind: KindModelNotFound, Message: req.CanonicalName}
		}
		params := buildChatCompletionParams(caps, req)
		resp, err := p.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return GenerateResponse{}, classifyOpenAIError(err)
		}
		return convertOpenAIResponse(req.CanonicalName, resp), nil
	})
}

// buildChatCompletionParams converts the model-agnostic GenerateRequest
// into openai-go/v3 wire params, mirroring
// openai_adapter.go:buildChatCompletionParams.
func buildChatCompletionParams(caps ModelCapabilities, req GenerateRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    req.CanonicalName,
		Messages: convertOpenAIMessages(req),
	}
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxOutputTokens))
	}
	if caps.SupportsTemperature && caps.TemperaturePolicy.Kind != TempFixed && req.Temperature != nil {
		corrected, _ := caps.TemperaturePolicy.Validate(*req.Temperature)
		params.Temperature = openai.Float(corrected)
	}
	return params
}

func convertOpenAIMessages(req GenerateRequest) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		out = append(out, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			if len(m.Images) == 0 {
				out = append(out, openai.UserMessage(m.Content))
				continue
			}
			parts := []openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(m.Content),
			}
			for _, img := range m.Images {
				parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL(img),
				}))
			}
			out = append(out, openai.UserMessage(parts))
		}
	}
	return out
}

func dataURL(img ChatImage) string {
	return fmt.Sprintf("data:image/%s;base64,%s", img.Format, base64Std(img.Data))
}

func convertOpenAIResponse(requestedModel string, resp *openai.ChatCompletion) GenerateResponse {
	out := GenerateResponse{ModelName: requestedModel}
	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		out.Content = choice.Message.Content
		out.FinishReason = string(choice.FinishReason)
	}
	out.InputTokens = int(resp.Usage.PromptTokens)
	out.OutputTokens = int(resp.Usage.CompletionTokens)
	return out
}
