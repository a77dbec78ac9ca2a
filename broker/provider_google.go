package broker

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GoogleProvider is the native Google provider (§4.5 "Google native"),
// grounded on petmal-MindTrial/providers/google.go's genai.Client usage
// rather than the teacher's older google/generative-ai-go adapter (the
// teacher's own gemini_v3.go attempted genai but never wired it into
// go.mod; this fixes that).
type GoogleProvider struct {
	baseProvider
	client *genai.Client
}

// NewGoogleProvider constructs a GoogleProvider against the Gemini API
// backend using apiKey.
func NewGoogleProvider(ctx context.Context, apiKey string, catalog *Catalog, restrictions *RestrictionService, priority int) (*GoogleProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GoogleProvider{
		baseProvider: baseProvider{
			ptype: ProviderGoogle, friendlyName: "Google Gemini", priority: priority,
			catalog: catalog, restrictions: restrictions,
		},
		client: client,
	}, nil
}

func (p *GoogleProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	return WithTransportRetry(ctx, 3, func(ctx context.Context) (GenerateResponse, error) {
		return p.generateOnce(ctx, req)
	})
}

func (p *GoogleProvider) generateOnce(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	caps, ok := p.Capabilities(req.CanonicalName)
	if !ok {
		return GenerateResponse{}, fmt.Errorf("modelNotFound: %s", req.CanonicalName)
	}

	cfg := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" && caps.SupportsSystemPrompt {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(req.SystemPrompt)}}
	}
	if caps.SupportsTemperature && caps.TemperaturePolicy.Kind != TempFixed && req.Temperature != nil {
		corrected, _ := caps.TemperaturePolicy.Validate(*req.Temperature)
		t := float32(corrected)
		cfg.Temperature = &t
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if caps.SupportsExtendedThinking && req.ThinkingMode != "" {
		cfg.ThinkingConfig = thinkingConfigFor(req.ThinkingMode)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			continue // already folded into SystemInstruction above
		}
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		parts := []*genai.Part{}
		if m.Content != "" {
			parts = append(parts, genai.NewPartFromText(m.Content))
		}
		for _, img := range m.Images {
			parts = append(parts, genai.NewPartFromBytes(img.Data, "image/"+string(img.Format)))
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	result, err := p.client.Models.GenerateContent(ctx, req.CanonicalName, contents, cfg)
	if err != nil {
		return GenerateResponse{}, classifyGoogleError(err)
	}

	var text string
	var finish string
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		finish = string(cand.FinishReason)
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
		}
	}

	resp := GenerateResponse{
		Content:      text,
		ModelName:    req.CanonicalName,
		FinishReason: finish,
	}
	if result.UsageMetadata != nil {
		resp.InputTokens = int(result.UsageMetadata.PromptTokenCount)
		resp.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
	}
	return resp, nil
}

func thinkingConfigFor(mode ThinkingMode) *genai.ThinkingConfig {
	level := genai.ThinkingLevelLow
	switch mode {
	case ThinkingMinimal, ThinkingLow:
		level = genai.ThinkingLevelLow
	case ThinkingMedium:
		level = genai.ThinkingLevelMedium
	case ThinkingHigh, ThinkingMax:
		level = genai.ThinkingLevelHigh
	}
	return &genai.ThinkingConfig{ThinkingLevel: level}
}
