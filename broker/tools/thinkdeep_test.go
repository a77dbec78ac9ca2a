package tools

import (
	"strings"
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestThinkDeepDeclaresExtendedReasoningCategory(t *testing.T) {
	if ThinkDeep().Category != broker.CategoryExtendedReasoning {
		t.Errorf("category = %v, want extendedReasoning", ThinkDeep().Category)
	}
}

func TestThinkDeepSchemaRequiresProblemOnly(t *testing.T) {
	spec := ThinkDeep()
	if err := spec.Schema.Validate("thinkdeep", map[string]interface{}{}); err == nil {
		t.Fatal("expected missing problem to fail validation")
	}
	if err := spec.Schema.Validate("thinkdeep", map[string]interface{}{"problem": "why is this slow"}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}

func TestThinkDeepBuildUserPromptAppendsFocus(t *testing.T) {
	spec := ThinkDeep()
	req := broker.ToolRequest{Raw: map[string]interface{}{"problem": "why is this slow", "focus": "the hot loop"}}
	got := spec.BuildUserPrompt(req)
	if !strings.Contains(got, "why is this slow") || !strings.Contains(got, "the hot loop") {
		t.Errorf("expected problem and focus in prompt, got %q", got)
	}
}
