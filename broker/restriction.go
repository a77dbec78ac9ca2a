package broker

import (
	"fmt"
	"strings"
)

// Restriction holds one provider's allow-list. Parsed once at startup
// from env, never mutated afterward — mirrors the teacher's
// validateProviderConfig "warn, don't abort" idiom for malformed input
// (agent/multiprovider.go).
type Restriction struct {
	unrestricted bool
	allowed      map[string]bool // canonical name, lowercased
}

// RestrictionService resolves and filters per-provider allow-lists. Every
// check happens after alias resolution so a restricted canonical name
// cannot be bypassed by requesting one of its aliases.
type RestrictionService struct {
	catalog      *Catalog
	byProvider   map[ProviderType]Restriction
	warnings     []string
}

// NewRestrictionService parses the raw comma-separated env strings for
// each provider against catalog. Unknown tokens are recorded as warnings,
// not errors (§4.4).
func NewRestrictionService(catalog *Catalog, raw map[ProviderType]string) *RestrictionService {
	rs := &RestrictionService{catalog: catalog, byProvider: make(map[ProviderType]Restriction)}
	for provider, spec := range raw {
		rs.byProvider[provider] = rs.parse(provider, spec)
	}
	return rs
}

func (rs *RestrictionService) parse(provider ProviderType, spec string) Restriction {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Restriction{unrestricted: true}
	}
	allowed := make(map[string]bool)
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		m, ok := rs.catalog.Resolve(tok)
		if !ok {
			rs.warnings = append(rs.warnings, fmt.Sprintf("%s: allowed-model entry %q does not resolve to any known model", provider, tok))
			continue
		}
		if m.Provider != provider {
			rs.warnings = append(rs.warnings, fmt.Sprintf("%s: allowed-model entry %q resolves to provider %s, ignoring", provider, tok, m.Provider))
			continue
		}
		allowed[strings.ToLower(m.CanonicalName)] = true
	}
	return Restriction{allowed: allowed}
}

// Warnings returns every parse warning collected across all providers,
// surfaced by the version/listmodels tools (SPEC_FULL.md §3).
func (rs *RestrictionService) Warnings() []string {
	return append([]string(nil), rs.warnings...)
}

// IsAllowed reports whether canonicalName may be served by provider.
func (rs *RestrictionService) IsAllowed(provider ProviderType, canonicalName string) bool {
	r, ok := rs.byProvider[provider]
	if !ok || r.unrestricted {
		return true
	}
	return r.allowed[strings.ToLower(canonicalName)]
}

// Filter retains only the allowed canonical names from list, preserving
// order.
func (rs *RestrictionService) Filter(provider ProviderType, list []string) []string {
	out := make([]string, 0, len(list))
	for _, name := range list {
		if rs.IsAllowed(provider, name) {
			out = append(out, name)
		}
	}
	return out
}

// AllowedModels returns the sorted-by-declaration canonical names a
// provider may currently serve, used for "choose one of: ..." hints.
func (rs *RestrictionService) AllowedModels(provider ProviderType) []string {
	var out []string
	for _, m := range rs.catalog.ForProvider(provider) {
		if rs.IsAllowed(provider, m.CanonicalName) {
			out = append(out, m.CanonicalName)
		}
	}
	return out
}
