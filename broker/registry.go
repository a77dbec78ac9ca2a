package broker

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ProviderStatus is a read-only health signal exposed purely for the
// listmodels/version introspection tools. There is no background poller,
// circuit breaker, or load-balancing here — see DESIGN.md "Trimmed, not
// dropped": this spec's registry has exactly one authoritative provider
// per canonical name (§4.6), so there is nothing to balance between.
type ProviderStatus int

const (
	StatusUnknown ProviderStatus = iota
	StatusHealthy
	StatusDisabled
)

func (s ProviderStatus) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Registry is the process-wide state object built once at startup and
// passed by reference to the tool kernel — grounded on §9's "global
// registry as module-level singleton → explicit init(config) → Registry"
// design note.
type Registry struct {
	providers []Provider // priority order: native Google, native OpenAI, Custom, OpenRouter
	byName    map[string]Provider // canonical name (lowercase) -> authoritative provider
	catalog   *Catalog
	config    *Config
}

// providerPriorityOrder is the deduplication order from §4.6: an earlier
// provider wins a given canonical name; later providers expose only
// names the earlier ones don't.
var providerPriorityOrder = []ProviderType{ProviderGoogle, ProviderOpenAI, ProviderCustom, ProviderOpenRouter}

// NewRegistry builds providers for which credentials are present (§4.6
// step 1), asks each for its effective model list (step 2), and
// deduplicates by canonical name in priority order (step 3).
func NewRegistry(ctx context.Context, cfg *Config, catalog *Catalog, restrictions *RestrictionService) (*Registry, error) {
	r := &Registry{byName: make(map[string]Provider), catalog: catalog, config: cfg}

	priority := 0
	nextPriority := func() int { priority++; return priority }

	if cfg.GoogleAPIKey != "" {
		p, err := NewGoogleProvider(ctx, cfg.GoogleAPIKey, catalog, restrictions, nextPriority())
		if err != nil {
			return nil, fmt.Errorf("initializing google provider: %w", err)
		}
		r.providers = append(r.providers, p)
	}
	if cfg.OpenAIAPIKey != "" {
		r.providers = append(r.providers, NewOpenAIProvider(cfg.OpenAIAPIKey, catalog, restrictions, nextPriority()))
	}
	if cfg.CustomAPIURL != "" && cfg.CustomAPIKey != "" {
		r.providers = append(r.providers, NewCustomProvider(cfg.CustomAPIKey, cfg.CustomAPIURL, catalog, restrictions, nextPriority()))
	}
	if cfg.OpenRouterAPIKey != "" {
		r.providers = append(r.providers, NewOpenRouterProvider(cfg.OpenRouterAPIKey, catalog, restrictions, nextPriority()))
	}

	if len(r.providers) == 0 {
		return nil, ErrNoProviders
	}

	// Dedup by canonical name, earlier (lower priority number) wins.
	sorted := make([]Provider, len(r.providers))
	copy(sorted, r.providers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })
	for _, p := range sorted {
		for _, name := range p.ListModels() {
			key := strings.ToLower(name)
			if _, claimed := r.byName[key]; !claimed {
				r.byName[key] = p
			}
		}
	}

	return r, nil
}

// Providers returns every initialized provider, priority order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority() < out[j].Priority() })
	return out
}

// Status reports a read-only health signal for listmodels/version.
// Every initialized provider is "healthy" since initialization already
// failed fast on missing credentials; there is no further degraded state
// modeled (see the trim note above).
func (r *Registry) Status(p Provider) ProviderStatus {
	for _, existing := range r.providers {
		if existing == p {
			return StatusHealthy
		}
	}
	return StatusDisabled
}

// Resolve implements §4.6 model resolution: alias→canonical through every
// provider in priority order; the first to claim it wins.
func (r *Registry) Resolve(name string) (Provider, string, error) {
	if name == "auto" {
		return nil, "", &ToolError{Kind: KindAutoUnresolved, Message: "model \"auto\" requires selectAuto", Err: ErrAutoUnresolved}
	}
	m, ok := r.catalog.Resolve(name)
	if !ok {
		return nil, "", r.modelNotFoundError(name)
	}
	key := strings.ToLower(m.CanonicalName)
	p, claimed := r.byName[key]
	if !claimed {
		return nil, "", r.modelNotFoundError(name)
	}
	return p, m.CanonicalName, nil
}

func (r *Registry) modelNotFoundError(requested string) error {
	var allowed []string
	for _, p := range r.Providers() {
		allowed = append(allowed, p.ListModels()...)
	}
	hint := "no models are currently resolvable"
	if len(allowed) > 0 {
		hint = "choose one of: " + strings.Join(allowed, ", ")
	}
	return &ToolError{
		Kind:    KindModelNotFound,
		Message: fmt.Sprintf("model %q is not known or has been restricted away", requested),
		Hint:    hint,
	}
}

// categoryCandidates implements the ranked candidate list per tool
// category, §4.6.
func categoryCandidates(tool Category) []Category {
	switch tool {
	case CategoryFast:
		return []Category{CategoryFast, CategoryBalanced}
	case CategoryBalanced:
		return []Category{CategoryBalanced, CategoryFast, CategoryReasoning}
	case CategoryReasoning:
		return []Category{CategoryReasoning, CategoryExtendedReasoning, CategoryBalanced}
	case CategoryExtendedReasoning:
		return []Category{CategoryExtendedReasoning, CategoryReasoning}
	case CategoryVision:
		return []Category{CategoryVision}
	default:
		return []Category{CategoryBalanced}
	}
}

// SelectAuto implements §4.6 auto-mode selection.
func (r *Registry) SelectAuto(toolCategory Category, hasImages bool) (string, error) {
	if hasImages && r.config.DefaultVisionModel != "" {
		if m, ok := r.catalog.Resolve(r.config.DefaultVisionModel); ok && m.SupportsImages {
			if p, claimed := r.byName[strings.ToLower(m.CanonicalName)]; claimed && p.ValidateModel(m.CanonicalName) {
				return m.CanonicalName, nil
			}
		}
	}

	for _, category := range categoryCandidates(toolCategory) {
		candidates := r.candidatesInCategory(category, hasImages)
		if len(candidates) == 0 {
			continue
		}
		return candidates[0].CanonicalName, nil
	}

	if hasImages {
		return "", &ToolError{Kind: KindNoVisionModel, Message: "no vision-capable model available", Err: ErrNoVisionModel}
	}
	return "", &ToolError{Kind: KindModelNotFound, Message: "no model satisfies auto-mode selection for this tool category"}
}

// candidatesInCategory returns every claimed, allowed model in category
// (for CategoryVision: every image-capable model, whatever its own
// category), ranked by provider priority then canonical-name lexical order for
// determinism — the tie-break rule grounded on
// agent/multiprovider_selector.go's selectPriority (Weight desc, Name
// asc), adapted from runtime load metrics to static priority.
func (r *Registry) candidatesInCategory(category Category, hasImages bool) []ModelCapabilities {
	var out []ModelCapabilities
	var providerOf []Provider
	for _, m := range r.catalog.All() {
		if category == CategoryVision {
			if !m.SupportsImages {
				continue
			}
		} else if m.Category != category {
			continue
		}
		if hasImages && !m.SupportsImages {
			continue
		}
		key := strings.ToLower(m.CanonicalName)
		p, claimed := r.byName[key]
		if !claimed || !p.ValidateModel(m.CanonicalName) {
			continue
		}
		out = append(out, m)
		providerOf = append(providerOf, p)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		pi, pj := providerOf[idx[i]], providerOf[idx[j]]
		if pi.Priority() != pj.Priority() {
			return pi.Priority() < pj.Priority()
		}
		return out[idx[i]].CanonicalName < out[idx[j]].CanonicalName
	})
	ranked := make([]ModelCapabilities, len(out))
	for i, id := range idx {
		ranked[i] = out[id]
	}
	return ranked
}
