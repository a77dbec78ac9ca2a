package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestVersionDeclaresNoModelRequirement(t *testing.T) {
	if Version().RequiresModel {
		t.Error("expected version to not require a model")
	}
}

func TestVersionStaticResponseListsToolsAndProviders(t *testing.T) {
	kernel := newTestKernel(t)
	resp, err := Version().StaticResponse(kernel, broker.ToolRequest{})
	if err != nil {
		t.Fatalf("StaticResponse: %v", err)
	}
	if resp.Status != broker.StatusSuccess {
		t.Errorf("Status = %v, want success", resp.Status)
	}
	if !strings.Contains(resp.Content, serverVersion) {
		t.Errorf("expected the server version in the response, got %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "chat") {
		t.Errorf("expected the chat tool listed, got %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "openai") {
		t.Errorf("expected openai listed as a configured provider, got %q", resp.Content)
	}
}

func TestVersionStaticResponseSurfacesRestrictionWarnings(t *testing.T) {
	catalog, _, err := broker.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	restrictions := broker.NewRestrictionService(catalog, map[broker.ProviderType]string{
		broker.ProviderOpenAI: "gpt-4o-mini,not-a-real-model",
	})
	cfg := &broker.Config{OpenAIAPIKey: "test-key", MaxConversationTurns: 20, MCPPromptSizeLimit: 50000, ConcurrencyLimit: 4}
	registry, err := broker.NewRegistry(context.Background(), cfg, catalog, restrictions)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	convo := broker.NewConversationStore(broker.NewMemoryKV(), time.Hour)
	kernel := broker.NewKernel(registry, convo, cfg, restrictions, broker.NoopLogger{})
	RegisterAll(kernel)

	resp, err := Version().StaticResponse(kernel, broker.ToolRequest{})
	if err != nil {
		t.Fatalf("StaticResponse: %v", err)
	}
	if !strings.Contains(resp.Content, "not-a-real-model") {
		t.Errorf("expected the restriction warning in the response, got %q", resp.Content)
	}
	warnings, _ := resp.Structured["restrictionWarnings"].([]string)
	if len(warnings) != 1 {
		t.Errorf("expected one structured restriction warning, got %v", resp.Structured["restrictionWarnings"])
	}
}
