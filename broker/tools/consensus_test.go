package tools

import (
	"strings"
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestConsensusDeclaresExtendedReasoningCategory(t *testing.T) {
	if Consensus().Category != broker.CategoryExtendedReasoning {
		t.Errorf("category = %v, want extendedReasoning", Consensus().Category)
	}
}

func TestConsensusDefaultTemperatureIsHigh(t *testing.T) {
	if Consensus().DefaultTemperature != 1.0 {
		t.Errorf("DefaultTemperature = %v, want 1.0", Consensus().DefaultTemperature)
	}
}

func TestConsensusSchemaRequiresQuestionOnly(t *testing.T) {
	spec := Consensus()
	if err := spec.Schema.Validate("consensus", map[string]interface{}{}); err == nil {
		t.Fatal("expected missing question to fail validation")
	}
	if err := spec.Schema.Validate("consensus", map[string]interface{}{"question": "should we ship this"}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}

func TestConsensusBuildUserPromptListsStances(t *testing.T) {
	spec := Consensus()
	req := broker.ToolRequest{Raw: map[string]interface{}{
		"question": "should we ship this",
		"stances":  []interface{}{"security", "cost"},
	}}
	got := spec.BuildUserPrompt(req)
	if !strings.Contains(got, "security") || !strings.Contains(got, "cost") {
		t.Errorf("expected both stances listed in prompt, got %q", got)
	}
}
