package broker

import "testing"

func TestRestrictionServiceUnrestrictedByDefault(t *testing.T) {
	c, _, _ := NewCatalog("")
	rs := NewRestrictionService(c, map[ProviderType]string{})
	if !rs.IsAllowed(ProviderOpenAI, "gpt-4o") {
		t.Error("expected unrestricted provider to allow any catalog model")
	}
}

func TestRestrictionServiceFiltersByAllowList(t *testing.T) {
	c, _, _ := NewCatalog("")
	rs := NewRestrictionService(c, map[ProviderType]string{
		ProviderOpenAI: "gpt-4o-mini",
	})
	if rs.IsAllowed(ProviderOpenAI, "gpt-4o") {
		t.Error("expected gpt-4o to be restricted away")
	}
	if !rs.IsAllowed(ProviderOpenAI, "gpt-4o-mini") {
		t.Error("expected gpt-4o-mini to remain allowed")
	}
	if !rs.IsAllowed(ProviderGoogle, "gemini-2.5-pro") {
		t.Error("expected a provider with no restriction entry to stay unrestricted")
	}
}

func TestRestrictionServiceWarnsOnUnknownToken(t *testing.T) {
	c, _, _ := NewCatalog("")
	rs := NewRestrictionService(c, map[ProviderType]string{
		ProviderOpenAI: "not-a-real-model",
	})
	if len(rs.Warnings()) == 0 {
		t.Error("expected a warning for an unresolvable allow-list entry")
	}
}

func TestRestrictionServiceWarnsOnCrossProviderToken(t *testing.T) {
	c, _, _ := NewCatalog("")
	rs := NewRestrictionService(c, map[ProviderType]string{
		ProviderOpenAI: "gemini-2.5-pro",
	})
	if len(rs.Warnings()) == 0 {
		t.Error("expected a warning when an allow-list entry belongs to a different provider")
	}
	if rs.IsAllowed(ProviderOpenAI, "gemini-2.5-pro") {
		t.Error("a cross-provider entry must not grant access")
	}
}

func TestRestrictionServiceFilterPreservesOrder(t *testing.T) {
	c, _, _ := NewCatalog("")
	rs := NewRestrictionService(c, map[ProviderType]string{
		ProviderOpenAI: "gpt-4o-mini,o3",
	})
	got := rs.Filter(ProviderOpenAI, []string{"gpt-4o", "gpt-4o-mini", "o3-mini", "o3"})
	want := []string{"gpt-4o-mini", "o3"}
	if len(got) != len(want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Filter = %v, want %v", got, want)
		}
	}
}
