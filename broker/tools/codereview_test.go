package tools

import (
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestCodeReviewDeclaresReasoningCategory(t *testing.T) {
	if CodeReview().Category != broker.CategoryReasoning {
		t.Errorf("category = %v, want reasoning", CodeReview().Category)
	}
}

func TestCodeReviewSchemaRequiresFiles(t *testing.T) {
	spec := CodeReview()
	if err := spec.Schema.Validate("codereview", map[string]interface{}{"instructions": "look for bugs"}); err == nil {
		t.Fatal("expected missing files to fail validation")
	}
	if err := spec.Schema.Validate("codereview", map[string]interface{}{"files": []interface{}{"/a.go"}}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}

func TestCodeReviewUsesSentinelPostProcess(t *testing.T) {
	spec := CodeReview()
	if spec.PostProcess == nil {
		t.Fatal("expected a PostProcess hook")
	}
	status, _, ok := spec.PostProcess(`{"status":"more_files_needed","filesNeeded":["/b.go"]}`)
	if !ok || status != broker.ToolStatus("moreFilesNeeded") {
		t.Errorf("expected sentinel detection, got status=%v ok=%v", status, ok)
	}
}

func TestCodeReviewBuildUserPromptDefaultsWhenNoInstructions(t *testing.T) {
	spec := CodeReview()
	got := spec.BuildUserPrompt(broker.ToolRequest{Raw: map[string]interface{}{}, Files: []string{"/a.go"}})
	if got == "" {
		t.Error("expected a non-empty default prompt")
	}
}
