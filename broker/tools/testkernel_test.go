package tools

import (
	"context"
	"testing"
	"time"

	"github.com/modelbroker/mcp-broker/broker"
)

// newTestKernel builds a real Kernel backed by a real Registry, using only
// the OpenAI provider path so construction never reaches for network
// credentials the Google SDK's client might otherwise need.
func newTestKernel(t *testing.T) *broker.Kernel {
	t.Helper()
	catalog, _, err := broker.NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	restrictions := broker.NewRestrictionService(catalog, nil)
	cfg := &broker.Config{OpenAIAPIKey: "test-key", MaxConversationTurns: 20, MCPPromptSizeLimit: 50000, ConcurrencyLimit: 4}

	registry, err := broker.NewRegistry(context.Background(), cfg, catalog, restrictions)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	convo := broker.NewConversationStore(broker.NewMemoryKV(), time.Hour)
	kernel := broker.NewKernel(registry, convo, cfg, restrictions, broker.NoopLogger{})
	RegisterAll(kernel)
	return kernel
}
