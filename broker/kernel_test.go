package broker

import (
	"context"
	"testing"
	"time"
)

func newTestKernel(t *testing.T) (*Kernel, *Registry) {
	t.Helper()
	r, _ := newFakeRegistry(t)
	convo := NewConversationStore(NewMemoryKV(), time.Hour)
	cfg := &Config{MaxConversationTurns: 20, MCPPromptSizeLimit: 50000, ConcurrencyLimit: 4, DefaultModel: "auto"}
	restrictions := NewRestrictionService(r.catalog, nil)
	return NewKernel(r, convo, cfg, restrictions, NoopLogger{}), r
}

func echoToolSpec() *ToolSpec {
	schema, err := CompileSchema(map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"prompt": map[string]interface{}{"type": "string"}},
		"required":   []string{"prompt"},
	})
	if err != nil {
		panic(err)
	}
	return &ToolSpec{
		Name:               "echo",
		Description:        "test tool",
		Category:           CategoryBalanced,
		RequiresModel:      true,
		DefaultTemperature: 0.5,
		PromptField:        "prompt",
		Schema:             schema,
		BuildUserPrompt: func(req ToolRequest) string {
			p, _ := req.Raw["prompt"].(string)
			return p
		},
	}
}

func TestKernelDispatchHappyPath(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())

	resp, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":  "gpt-4o-mini",
		"prompt": "hello",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Status != StatusSuccess {
		t.Errorf("Status = %v, want success", resp.Status)
	}
	if resp.Content != "fake response" {
		t.Errorf("Content = %q, want %q", resp.Content, "fake response")
	}
	if resp.ContinuationOffer == nil {
		t.Fatal("expected a continuation offer to be created")
	}
	if len(resp.ContinuationOffer.Suggestions) == 0 {
		t.Error("expected the continuation offer to carry at least one suggestion")
	}
	if resp.Metadata.ModelUsed != "gpt-4o-mini" {
		t.Errorf("ModelUsed = %q, want gpt-4o-mini", resp.Metadata.ModelUsed)
	}
}

func TestKernelDispatchUnknownTool(t *testing.T) {
	k, _ := newTestKernel(t)
	_, err := k.Dispatch(context.Background(), "does-not-exist", nil)
	if !IsKind(err, KindInvalidRequest) {
		t.Errorf("expected KindInvalidRequest, got %v", err)
	}
}

func TestKernelDispatchSchemaValidationFailure(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())
	_, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{})
	if !IsKind(err, KindInvalidRequest) {
		t.Errorf("expected KindInvalidRequest for missing required field, got %v", err)
	}
}

func TestKernelDispatchPromptSizeGate(t *testing.T) {
	k, _ := newTestKernel(t)
	k.Config.MCPPromptSizeLimit = 10
	k.RegisterTool(echoToolSpec())

	resp, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":  "gpt-4o-mini",
		"prompt": "this prompt is definitely longer than ten characters",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Status != StatusClarificationRequested {
		t.Errorf("Status = %v, want clarificationRequested", resp.Status)
	}
}

func TestKernelDispatchUnknownModel(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())
	_, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":  "not-a-real-model",
		"prompt": "hi",
	})
	if !IsKind(err, KindModelNotFound) {
		t.Errorf("expected KindModelNotFound, got %v", err)
	}
}

func TestKernelDispatchContinuation(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())

	first, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":  "gpt-4o-mini",
		"prompt": "first turn",
	})
	if err != nil {
		t.Fatalf("first Dispatch: %v", err)
	}

	second, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":          "gpt-4o-mini",
		"prompt":         "second turn",
		"continuationId": first.ContinuationOffer.ThreadID,
	})
	if err != nil {
		t.Fatalf("second Dispatch: %v", err)
	}
	if second.ContinuationOffer.ThreadID != first.ContinuationOffer.ThreadID {
		t.Error("expected the same thread id across a continuation")
	}
	if second.ContinuationOffer.RemainingTurns >= first.ContinuationOffer.RemainingTurns {
		t.Error("expected remaining turns to decrease as the thread grows")
	}
}

func TestKernelDispatchUnknownContinuationID(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())
	_, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":          "gpt-4o-mini",
		"prompt":         "hi",
		"continuationId": "does-not-exist",
	})
	if !IsKind(err, KindThreadNotFound) {
		t.Errorf("expected KindThreadNotFound, got %v", err)
	}
}

func TestKernelDispatchImagesAtLimitAccepted(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())

	resp, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":            "gpt-4o",
		"prompt":           "hi",
		"images":           []interface{}{"/tmp/a.png"},
		"imagesTotalBytes": float64(20 * 1024 * 1024),
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Status != StatusSuccess {
		t.Errorf("Status = %v, want success", resp.Status)
	}
}

func TestKernelDispatchImagesOverLimitRejected(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(echoToolSpec())

	_, err := k.Dispatch(context.Background(), "echo", map[string]interface{}{
		"model":            "gpt-4o",
		"prompt":           "hi",
		"images":           []interface{}{"/tmp/a.png"},
		"imagesTotalBytes": float64(20*1024*1024 + 1),
	})
	if !IsKind(err, KindImagesTooLarge) {
		t.Errorf("expected KindImagesTooLarge, got %v", err)
	}
}

func TestKernelDispatchStaticResponseTool(t *testing.T) {
	k, _ := newTestKernel(t)
	k.RegisterTool(&ToolSpec{
		Name:          "ping",
		RequiresModel: false,
		StaticResponse: func(k *Kernel, req ToolRequest) (ToolResponse, error) {
			return ToolResponse{Content: "pong", ContentType: ContentText, Status: StatusSuccess}, nil
		},
	})
	resp, err := k.Dispatch(context.Background(), "ping", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Content != "pong" {
		t.Errorf("Content = %q, want pong", resp.Content)
	}
}
