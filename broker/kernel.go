package broker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// Kernel is the common tool-dispatch base every tool call passes through
// (§4.10). Grounded on agent/builder_execution.go's Ask(): ordered,
// guarded stages with structured debug logging at each step.
type Kernel struct {
	Registry     *Registry
	Convo        *ConversationStore
	Config       *Config
	Restrictions *RestrictionService
	Logger       Logger

	tools       map[string]*ToolSpec
	sem         *semaphore.Weighted
	rateLimiter *ProviderRateLimiter
}

func NewKernel(registry *Registry, convo *ConversationStore, cfg *Config, restrictions *RestrictionService, logger Logger) *Kernel {
	if logger == nil {
		logger = NoopLogger{}
	}
	limit := cfg.ConcurrencyLimit
	if limit <= 0 {
		limit = 8
	}
	return &Kernel{
		Registry: registry, Convo: convo, Config: cfg, Restrictions: restrictions, Logger: logger,
		tools:       make(map[string]*ToolSpec),
		sem:         semaphore.NewWeighted(int64(limit)),
		rateLimiter: NewProviderRateLimiter(),
	}
}

// RegisterTool adds a tool to the catalog. Called once at startup for
// every entry in the fixed tool set (§1, §4.10).
func (k *Kernel) RegisterTool(spec *ToolSpec) {
	k.tools = mergeTool(k.tools, spec)
}

func mergeTool(tools map[string]*ToolSpec, spec *ToolSpec) map[string]*ToolSpec {
	tools[spec.Name] = spec
	return tools
}

// ListTools returns every registered tool, for the `tools/list` RPC
// method.
func (k *Kernel) ListTools() []*ToolSpec {
	out := make([]*ToolSpec, 0, len(k.tools))
	for _, t := range k.tools {
		out = append(out, t)
	}
	return out
}

// Dispatch runs the full 10-step pipeline for one `tools/call` request.
func (k *Kernel) Dispatch(ctx context.Context, toolName string, args map[string]interface{}) (ToolResponse, error) {
	spec, ok := k.tools[toolName]
	if !ok {
		return ToolResponse{}, &ToolError{Kind: KindInvalidRequest, Tool: toolName, Message: "unknown tool", Hint: "call tools/list to see the registered catalog"}
	}

	k.Logger.Debug(ctx, "dispatch start", F("tool", toolName))

	// Step 1: schema validation.
	if spec.Schema != nil {
		if err := spec.Schema.Validate(toolName, args); err != nil {
			return ToolResponse{}, err
		}
	}

	req := ParseToolRequest(args)

	// Step 2: prompt-size gate.
	if spec.PromptField != "" {
		if v, ok := args[spec.PromptField].(string); ok && len(v) > k.Config.MCPPromptSizeLimit {
			return ToolResponse{
				Content:     fmt.Sprintf("the %q field is %d characters, over the %d limit; resubmit this content as a file instead", spec.PromptField, len(v), k.Config.MCPPromptSizeLimit),
				ContentType: ContentText,
				Status:      StatusClarificationRequested,
			}, nil
		}
	}

	if !spec.RequiresModel {
		if spec.StaticResponse == nil {
			return ToolResponse{}, WrapInternal(toolName, fmt.Errorf("tool declares requiresModel=false but has no StaticResponse"))
		}
		return spec.StaticResponse(k, req)
	}

	// Step 3: continuation reconstruction.
	var thread *ConversationThread
	var historyText string
	var historyTokens int
	effectiveFiles := req.Files
	effectiveImages := req.Images
	if req.ContinuationID != "" {
		loaded, err := k.Convo.Load(ctx, req.ContinuationID)
		if err != nil {
			if err == ErrThreadAbsent {
				return ToolResponse{}, &ToolError{Kind: KindThreadNotFound, Tool: toolName, Message: "continuation id does not resolve to a live thread", Hint: "start a new conversation by omitting continuationId", Err: ErrThreadNotFound}
			}
			return ToolResponse{}, WrapInternal(toolName, err)
		}
		thread = loaded
		threadFiles, threadImages := dedupNewestFirst(thread.Turns)
		effectiveFiles = MergeFileLists(threadFiles, req.Files)
		effectiveImages = MergeFileLists(threadImages, req.Images)
	}

	// Step 4: model selection.
	hasImages := len(effectiveImages) > 0
	modelName := req.Model
	if modelName == "" {
		modelName = k.Config.DefaultModel
	}
	var canonical string
	var provider Provider
	if modelName == "auto" {
		category := spec.Category
		auto, err := k.Registry.SelectAuto(category, hasImages)
		if err != nil {
			return ToolResponse{}, err
		}
		canonical = auto
		provider, canonical, _ = k.Registry.Resolve(canonical)
	} else {
		p, c, err := k.Registry.Resolve(modelName)
		if err != nil {
			return ToolResponse{}, err
		}
		provider, canonical = p, c
	}

	caps, _ := provider.Capabilities(canonical)
	if hasImages && !caps.SupportsImages {
		return ToolResponse{}, &ToolError{Kind: KindVisionUnsupported, Tool: toolName, Message: fmt.Sprintf("model %s does not support image input", canonical), Hint: "choose a vision-capable model or remove the images"}
	}
	if hasImages {
		// Byte sizes for request-supplied images are resolved by the
		// caller (out of core scope, §1); the kernel only checks the
		// declared aggregate against the model's ceiling.
		var total int64
		if v, ok := args["imagesTotalBytes"].(float64); ok {
			total = int64(v)
		}
		if caps.MaxImageBytes > 0 && total > caps.MaxImageBytes {
			return ToolResponse{}, &ToolError{Kind: KindImagesTooLarge, Tool: toolName, Message: fmt.Sprintf("image payload %d bytes exceeds model limit %d bytes", total, caps.MaxImageBytes), Hint: "reduce image size or count"}
		}
	}

	modelCtx := NewModelContext(caps)
	allocation := modelCtx.Allocate()

	if thread != nil {
		hist := BuildHistory(thread, allocation)
		historyText = hist.HistoryText
		historyTokens = hist.HistoryTokens
	}

	// Step 5: temperature resolution.
	temperature := spec.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	// Step 6: assemble provider request.
	systemPrompt := ""
	if spec.SystemPrompt != nil {
		systemPrompt = spec.SystemPrompt(req)
	}
	userPrompt := ""
	if spec.BuildUserPrompt != nil {
		userPrompt = spec.BuildUserPrompt(req)
	}
	var messages []ChatMessage
	if historyText != "" {
		messages = append(messages, ChatMessage{Role: RoleUser, Content: historyText})
	}
	messages = append(messages, ChatMessage{Role: RoleUser, Content: userPrompt})

	genReq := GenerateRequest{
		CanonicalName:   canonical,
		Messages:        messages,
		SystemPrompt:    systemPrompt,
		Temperature:     &temperature,
		MaxOutputTokens: allocation.ResponseReserve,
		ThinkingMode:    req.ThinkingMode,
	}

	k.Logger.Debug(ctx, "provider call", F("tool", toolName), F("model", canonical), F("provider", provider.Type()))

	// Step 7: provider call, bounded by the concurrency limit and a
	// per-category timeout (§5).
	if err := k.sem.Acquire(ctx, 1); err != nil {
		return ToolResponse{}, WrapInternal(toolName, err)
	}
	defer k.sem.Release(1)

	if err := k.rateLimiter.Wait(ctx, provider.Type()); err != nil {
		return ToolResponse{}, WrapInternal(toolName, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeoutForCategory(caps.Category))
	defer cancel()

	resp, err := provider.Generate(callCtx, genReq)
	if err != nil {
		if te, ok := err.(*ToolError); ok {
			te.Tool = toolName
			return ToolResponse{}, te
		}
		return ToolResponse{}, WrapProviderInternal(toolName, string(provider.Type()), err)
	}

	// Step 8: post-process.
	if spec.PostProcess != nil {
		if status, structured, handled := spec.PostProcess(resp.Content); handled {
			return ToolResponse{
				Content:     resp.Content,
				ContentType: ContentJSON,
				Status:      status,
				Metadata: ToolResponseMetadata{
					ModelUsed: canonical, InputTokens: resp.InputTokens, OutputTokens: resp.OutputTokens,
					ProviderType: string(provider.Type()),
				},
				Structured: structured,
			}, nil
		}
	}

	// Step 9: thread maintenance.
	var offer *ContinuationOffer
	userTurn := ConversationTurn{Role: TurnUser, Content: userPrompt, Timestamp: time.Now(), ToolName: toolName, Files: effectiveFiles, Images: effectiveImages}
	assistantTurn := ConversationTurn{Role: TurnAssistant, Content: resp.Content, Timestamp: time.Now(), ToolName: toolName, ModelName: canonical, InputTokens: resp.InputTokens, OutputTokens: resp.OutputTokens}

	if thread != nil {
		updated, err := k.Convo.Append(ctx, thread.ID, userTurn, k.Config.MaxConversationTurns)
		if err == nil {
			updated, err = k.Convo.Append(ctx, thread.ID, assistantTurn, k.Config.MaxConversationTurns)
		}
		if err != nil {
			k.Logger.Warn(ctx, "thread append failed", F("tool", toolName), F("thread_id", thread.ID), F("error", err.Error()))
		} else {
			remaining := k.Config.MaxConversationTurns - updated.TotalTurns()
			if remaining < 0 {
				remaining = 0
			}
			offer = &ContinuationOffer{ThreadID: updated.ID, RemainingTurns: remaining, TotalTokens: updated.TotalTokens(), Suggestions: continuationSuggestions(remaining)}
		}
	} else {
		id, err := k.Convo.Create(ctx, toolName, userTurn)
		if err != nil {
			k.Logger.Warn(ctx, "thread create failed", F("tool", toolName), F("error", err.Error()))
		} else {
			updated, err := k.Convo.Append(ctx, id, assistantTurn, k.Config.MaxConversationTurns)
			if err != nil {
				k.Logger.Warn(ctx, "thread append failed", F("tool", toolName), F("thread_id", id), F("error", err.Error()))
			} else {
				remaining := k.Config.MaxConversationTurns - updated.TotalTurns()
				if remaining < 0 {
					remaining = 0
				}
				offer = &ContinuationOffer{ThreadID: id, RemainingTurns: remaining, TotalTokens: updated.TotalTokens(), Suggestions: continuationSuggestions(remaining)}
			}
		}
	}

	// Step 10: response formatting.
	k.Logger.Debug(ctx, "dispatch done", F("tool", toolName), F("model", canonical), F("history_tokens", historyTokens))
	return ToolResponse{
		Content:     resp.Content,
		ContentType: ContentText,
		Status:      StatusSuccess,
		Metadata: ToolResponseMetadata{
			ModelUsed: canonical, InputTokens: resp.InputTokens, OutputTokens: resp.OutputTokens,
			ProviderType: string(provider.Type()),
		},
		ContinuationOffer: offer,
	}, nil
}

// continuationSuggestions renders the follow-up hints attached to a
// ContinuationOffer (§3, §6): always point the client back at the thread
// id, and warn once the turn budget is close to exhausted.
func continuationSuggestions(remaining int) []string {
	suggestions := []string{"pass this continuationId on your next call to keep the full conversation history"}
	if remaining <= 3 {
		suggestions = append(suggestions, fmt.Sprintf("only %d turn(s) remain before this thread is capped; start a new one if the conversation should continue further", remaining))
	}
	return suggestions
}

// timeoutForCategory implements §5's per-category provider call timeout:
// 600s for reasoning-shaped models, 120s otherwise.
func timeoutForCategory(c Category) time.Duration {
	switch c {
	case CategoryReasoning, CategoryExtendedReasoning:
		return 600 * time.Second
	default:
		return 120 * time.Second
	}
}
