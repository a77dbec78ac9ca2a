package broker

import "testing"

func TestCompileSchemaValidatesRequiredField(t *testing.T) {
	schema, err := CompileSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"prompt": map[string]interface{}{"type": "string"},
		},
		"required": []string{"prompt"},
	})
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}

	if err := schema.Validate("chat", map[string]interface{}{"prompt": "hi"}); err != nil {
		t.Errorf("expected valid args to pass, got %v", err)
	}

	err = schema.Validate("chat", map[string]interface{}{})
	if err == nil {
		t.Fatal("expected missing required field to fail validation")
	}
	te, ok := err.(*ToolError)
	if !ok {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if te.Kind != KindInvalidRequest {
		t.Errorf("Kind = %v, want KindInvalidRequest", te.Kind)
	}
}

func TestCompileSchemaRejectsWrongType(t *testing.T) {
	schema, err := CompileSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"temperature": map[string]interface{}{"type": "number"},
		},
	})
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}
	if err := schema.Validate("chat", map[string]interface{}{"temperature": "not-a-number"}); err == nil {
		t.Error("expected a type mismatch to fail validation")
	}
}
