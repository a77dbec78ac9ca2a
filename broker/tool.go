package broker

// ContentType is the wire type of a ToolResponse's content (§3).
type ContentType string

const (
	ContentText ContentType = "text"
	ContentCode ContentType = "code"
	ContentJSON ContentType = "json"
)

// ToolStatus is the outcome status of a ToolResponse (§3). Beyond the
// universal statuses, a tool may declare its own (e.g. "moreFilesNeeded")
// via PostProcess.
type ToolStatus string

const (
	StatusSuccess                ToolStatus = "success"
	StatusError                  ToolStatus = "error"
	StatusClarificationRequested ToolStatus = "clarificationRequested"
)

// ContinuationOffer is attached to a successful ToolResponse that
// created or extended a thread (§3).
type ContinuationOffer struct {
	ThreadID       string   `json:"threadId"`
	RemainingTurns int      `json:"remainingTurns"`
	TotalTokens    int      `json:"totalTokens"`
	Suggestions    []string `json:"suggestions,omitempty"`
}

// ToolResponseMetadata carries the provider-accounting fields every
// successful response reports (§3).
type ToolResponseMetadata struct {
	ModelUsed    string `json:"modelUsed,omitempty"`
	InputTokens  int    `json:"inputTokens,omitempty"`
	OutputTokens int    `json:"outputTokens,omitempty"`
	ProviderType string `json:"providerType,omitempty"`
}

// ToolResponse is the common response envelope every tool call produces
// (§3).
type ToolResponse struct {
	Content           string                 `json:"content"`
	ContentType       ContentType            `json:"contentType"`
	Status            ToolStatus             `json:"status"`
	Metadata          ToolResponseMetadata   `json:"metadata"`
	ContinuationOffer *ContinuationOffer     `json:"continuationOffer,omitempty"`
	Structured        map[string]interface{} `json:"structured,omitempty"`
}

// ToolRequest is the common set of fields carried by every tool call
// (§3), parsed out of the raw JSON-RPC arguments map before
// tool-specific fields are inspected.
type ToolRequest struct {
	Model          string
	Temperature    *float64
	ThinkingMode   ThinkingMode
	UseWebSearch   bool
	ContinuationID string
	Files          []string
	Images         []string
	Raw            map[string]interface{}
}

// ParseToolRequest extracts the common fields from a raw arguments map.
// Tool-specific fields stay in Raw for the tool's own use.
func ParseToolRequest(args map[string]interface{}) ToolRequest {
	req := ToolRequest{Raw: args}
	if v, ok := args["model"].(string); ok {
		req.Model = v
	}
	if v, ok := args["temperature"].(float64); ok {
		req.Temperature = &v
	}
	if v, ok := args["thinkingMode"].(string); ok {
		if mode, valid := validThinkingMode(v); valid {
			req.ThinkingMode = mode
		}
	}
	if v, ok := args["useWebSearch"].(bool); ok {
		req.UseWebSearch = v
	}
	if v, ok := args["continuationId"].(string); ok {
		req.ContinuationID = v
	}
	req.Files = stringSlice(args["files"])
	req.Images = stringSlice(args["images"])
	return req
}

func stringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToolSpec declares one tool's fixed shape: a system prompt, an input
// schema, a model category, and optional post-processing. Each concrete
// tool (broker/tools/*.go) builds one of these rather than implementing
// a wide interface — grounded on agent/tool.go's declarative
// NewTool(...).AddParameter(...).WithHandler(...) builder, adapted from
// "callable function the model invokes" to "MCP tool the client
// invokes".
type ToolSpec struct {
	Name               string
	Description        string
	Category           Category
	RequiresModel      bool
	DefaultTemperature float64
	Schema             *CompiledSchema
	PromptField        string // which arg holds the size-gated text, "" if none

	// SystemPrompt renders this tool's system prompt from the parsed
	// request and raw args.
	SystemPrompt func(req ToolRequest) string

	// BuildUserPrompt renders the user-facing prompt text placed into the
	// final message, after schema validation and the size gate.
	BuildUserPrompt func(req ToolRequest) string

	// PostProcess inspects the raw provider content for a sentinel
	// leading JSON block signaling a non-terminal structured status
	// (§4.10 step 8, e.g. "moreFilesNeeded"). ok is false when the
	// content is an ordinary terminal response.
	PostProcess func(content string) (status ToolStatus, structured map[string]interface{}, ok bool)

	// StaticResponse is used only when RequiresModel is false
	// (listmodels, version): a pure function of registry/config state,
	// never a provider call (§4.10, Open Question 3).
	StaticResponse func(k *Kernel, req ToolRequest) (ToolResponse, error)
}
