package tools

import (
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestSeerDeclaresVisionCategory(t *testing.T) {
	if Seer().Category != broker.CategoryVision {
		t.Errorf("category = %v, want vision", Seer().Category)
	}
}

func TestSeerSchemaRequiresQuestionAndImages(t *testing.T) {
	spec := Seer()
	if err := spec.Schema.Validate("seer", map[string]interface{}{"question": "what is in this picture"}); err == nil {
		t.Fatal("expected missing images to fail validation")
	}
	if err := spec.Schema.Validate("seer", map[string]interface{}{
		"question": "what is in this picture",
		"images":   []interface{}{"/a.png"},
	}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}
