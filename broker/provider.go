package broker

import "context"

// ChatRole is the role tag on one message in a GenerateRequest.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatImage is one inline image attached to a message.
type ChatImage struct {
	Data      []byte
	Format    ImageFormat
	SizeBytes int64
}

// ChatMessage is one turn in a GenerateRequest's messages list.
type ChatMessage struct {
	Role    ChatRole
	Content string
	Images  []ChatImage
}

// GenerateRequest is the model-agnostic shape the kernel constructs;
// each provider adapter translates it into its own wire format (§4.5).
type GenerateRequest struct {
	CanonicalName   string
	Messages        []ChatMessage
	SystemPrompt    string
	Temperature     *float64 // nil means "use the provider/tool default"
	MaxOutputTokens int
	ThinkingMode    ThinkingMode
}

// GenerateResponse is the model-agnostic shape every provider adapter
// returns.
type GenerateResponse struct {
	Content          string
	ModelName        string
	InputTokens      int
	OutputTokens     int
	FinishReason     string
	ProviderMetadata map[string]interface{}
}

// Provider is the common capability set every provider family
// implements (§4.5). Grounded on agent/adapter.go's LLMAdapter, widened
// with catalog-introspection methods the teacher's two-method interface
// didn't need because it had no registry layered on top.
type Provider interface {
	Type() ProviderType
	FriendlyName() string
	Priority() int

	// ListModels returns every canonical name this provider claims,
	// honoring restrictions.
	ListModels() []string

	Capabilities(canonicalName string) (ModelCapabilities, bool)
	ValidateModel(canonicalName string) bool

	// ResolveAlias resolves name (alias or canonical, case-insensitive)
	// to a canonical name this provider serves, or ("", false).
	ResolveAlias(name string) (string, bool)

	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// baseProvider centralizes the catalog/restriction-backed methods shared
// by every concrete provider, so each adapter file only implements
// Generate and its own client wiring.
type baseProvider struct {
	ptype        ProviderType
	friendlyName string
	priority     int
	catalog      *Catalog
	restrictions *RestrictionService
}

func (b *baseProvider) Type() ProviderType    { return b.ptype }
func (b *baseProvider) FriendlyName() string  { return b.friendlyName }
func (b *baseProvider) Priority() int         { return b.priority }

func (b *baseProvider) ListModels() []string {
	var names []string
	for _, m := range b.catalog.ForProvider(b.ptype) {
		names = append(names, m.CanonicalName)
	}
	return b.restrictions.Filter(b.ptype, names)
}

func (b *baseProvider) Capabilities(canonicalName string) (ModelCapabilities, bool) {
	m, ok := b.catalog.Resolve(canonicalName)
	if !ok || m.Provider != b.ptype {
		return ModelCapabilities{}, false
	}
	return m, true
}

func (b *baseProvider) ValidateModel(canonicalName string) bool {
	m, ok := b.Capabilities(canonicalName)
	return ok && b.restrictions.IsAllowed(b.ptype, m.CanonicalName)
}

func (b *baseProvider) ResolveAlias(name string) (string, bool) {
	m, ok := b.catalog.Resolve(name)
	if !ok || m.Provider != b.ptype {
		return "", false
	}
	if !b.restrictions.IsAllowed(b.ptype, m.CanonicalName) {
		return "", false
	}
	return m.CanonicalName, true
}
