package broker

import "testing"

func TestAllocateLargeContextPolicy(t *testing.T) {
	mc := NewModelContext(ModelCapabilities{ContextTokens: 1_048_576})
	a := mc.Allocate()
	if a.ContentBudget+a.ResponseReserve != a.ContextTokens {
		t.Fatalf("content+response (%d+%d) != context (%d)", a.ContentBudget, a.ResponseReserve, a.ContextTokens)
	}
	if a.FileBudget+a.HistoryBudget > a.ContentBudget {
		t.Fatalf("file+history (%d+%d) exceeds content budget (%d)", a.FileBudget, a.HistoryBudget, a.ContentBudget)
	}
	wantContent := int(float64(1_048_576) * 0.80)
	if a.ContentBudget != wantContent {
		t.Errorf("ContentBudget = %d, want %d", a.ContentBudget, wantContent)
	}
}

func TestAllocateSmallContextPolicy(t *testing.T) {
	mc := NewModelContext(ModelCapabilities{ContextTokens: 128_000})
	a := mc.Allocate()
	if a.ContentBudget+a.ResponseReserve != a.ContextTokens {
		t.Fatalf("content+response (%d+%d) != context (%d)", a.ContentBudget, a.ResponseReserve, a.ContextTokens)
	}
	wantContent := int(float64(128_000) * 0.60)
	if a.ContentBudget != wantContent {
		t.Errorf("ContentBudget = %d, want %d", a.ContentBudget, wantContent)
	}
}

func TestMaxOutputTokensMatchesResponseReserve(t *testing.T) {
	mc := NewModelContext(ModelCapabilities{ContextTokens: 200_000})
	if mc.MaxOutputTokens() != mc.Allocate().ResponseReserve {
		t.Error("MaxOutputTokens should equal Allocate().ResponseReserve")
	}
}
