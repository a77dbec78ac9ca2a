package broker

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the catch-all aggregator provider. Canonical
// names are "owner/model"-shaped (§4.5). Grounded on
// petmal-MindTrial/providers/openrouter.go's pattern of wrapping the
// OpenAI-compatible client against a different base URL plus attribution
// headers.
type OpenRouterProvider struct {
	baseProvider
	client openai.Client
}

func NewOpenRouterProvider(apiKey string, catalog *Catalog, restrictions *RestrictionService, priority int) *OpenRouterProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(openRouterBaseURL),
		option.WithHeader("HTTP-Referer", "https://github.com/modelbroker/mcp-broker"),
		option.WithHeader("X-Title", "mcp-broker"),
	)
	return &OpenRouterProvider{
		baseProvider: baseProvider{
			ptype: ProviderOpenRouter, friendlyName: "OpenRouter", priority: priority,
			catalog: catalog, restrictions: restrictions,
		},
		client: client,
	}
}

func (p *OpenRouterProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
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
