package broker

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CustomProvider targets an arbitrary OpenAI-compatible base URL (local
// inference servers, Ollama, Azure-fronted deployments). Capabilities are
// declared via the catalog override file, never discovered — grounded on
// agent/config.go's Ollama branch and openai_adapter.go's
// NewOpenAIAdapter(apiKey, baseURL) constructor.
type CustomProvider struct {
	baseProvider
	client openai.Client
}

func NewCustomProvider(apiKey, baseURL string, catalog *Catalog, restrictions *RestrictionService, priority int) *CustomProvider {
	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := openai.NewClient(opts...)
	return &CustomProvider{
		baseProvider: baseProvider{
			ptype: ProviderCustom, friendlyName: "Custom OpenAI-compatible", priority: priority,
			catalog: catalog, restrictions: restrictions,
		},
		client: client,
	}
}

func (p *CustomProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
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
