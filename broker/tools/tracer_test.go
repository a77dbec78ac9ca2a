package tools

import (
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestTracerDeclaresReasoningCategory(t *testing.T) {
	if Tracer().Category != broker.CategoryReasoning {
		t.Errorf("category = %v, want reasoning", Tracer().Category)
	}
}

func TestTracerSchemaRequiresTargetAndFiles(t *testing.T) {
	spec := Tracer()
	if err := spec.Schema.Validate("tracer", map[string]interface{}{"target": "Dispatch"}); err == nil {
		t.Fatal("expected missing files to fail validation")
	}
	if err := spec.Schema.Validate("tracer", map[string]interface{}{"target": "Dispatch", "files": []interface{}{"/a.go"}}); err != nil {
		t.Errorf("expected a valid call to pass, got %v", err)
	}
}
