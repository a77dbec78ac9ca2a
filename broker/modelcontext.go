package broker

// TokenAllocation is the derived per-request budget split (§3, §4.8).
// Invariant: ContentBudget + ResponseReserve == ContextTokens, and
// FileBudget + HistoryBudget <= ContentBudget (§8).
type TokenAllocation struct {
	ContextTokens   int
	ContentBudget   int
	ResponseReserve int
	FileBudget      int
	HistoryBudget   int
	PromptHeadroom  int
}

// largeContextThreshold is the §4.8 cutoff separating the two fixed
// allocation policies.
const largeContextThreshold = 1_000_000

// ModelContext couples a selected model with its capabilities and
// computes its per-request token allocation.
type ModelContext struct {
	Model ModelCapabilities
}

func NewModelContext(m ModelCapabilities) *ModelContext {
	return &ModelContext{Model: m}
}

func (mc *ModelContext) ContextTokens() int { return mc.Model.ContextTokens }

// Allocate implements the fixed policy from §4.8. The ratios are policy,
// not derivation — encoded exactly as specified, not computed from any
// other input.
func (mc *ModelContext) Allocate() TokenAllocation {
	ctx := mc.Model.ContextTokens
	var contentPct, responsePct, filePct, historyPct float64
	if ctx >= largeContextThreshold {
		contentPct, responsePct = 0.80, 0.20
		filePct, historyPct = 0.35, 0.45
	} else {
		contentPct, responsePct = 0.60, 0.40
		filePct, historyPct = 0.40, 0.40
	}

	contentBudget := int(float64(ctx) * contentPct)
	responseReserve := ctx - contentBudget // exact complement, guarantees the sum invariant
	fileBudget := int(float64(contentBudget) * filePct)
	historyBudget := int(float64(contentBudget) * historyPct)
	promptHeadroom := contentBudget - fileBudget - historyBudget

	return TokenAllocation{
		ContextTokens:   ctx,
		ContentBudget:   contentBudget,
		ResponseReserve: responseReserve,
		FileBudget:      fileBudget,
		HistoryBudget:   historyBudget,
		PromptHeadroom:  promptHeadroom,
	}
}

// MaxOutputTokens is the allocation's response reserve, used directly as
// the provider request's output-token cap.
func (mc *ModelContext) MaxOutputTokens() int {
	return mc.Allocate().ResponseReserve
}
