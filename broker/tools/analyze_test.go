package tools

import (
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestAnalyzeDeclaresReasoningCategory(t *testing.T) {
	if Analyze().Category != broker.CategoryReasoning {
		t.Errorf("category = %v, want reasoning", Analyze().Category)
	}
}

func TestAnalyzeSchemaRequiresQuestion(t *testing.T) {
	spec := Analyze()
	if err := spec.Schema.Validate("analyze", map[string]interface{}{}); err == nil {
		t.Fatal("expected missing question to fail validation")
	}
	if err := spec.Schema.Validate("analyze", map[string]interface{}{"question": "why is this package structured this way"}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}
