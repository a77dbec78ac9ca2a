package tools

import (
	"strings"
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestRawStringReturnsEmptyForMissingKey(t *testing.T) {
	req := broker.ToolRequest{Raw: map[string]interface{}{}}
	if got := rawString(req, "missing"); got != "" {
		t.Errorf("rawString = %q, want empty string", got)
	}
}

func TestRawStringReturnsEmptyForWrongType(t *testing.T) {
	req := broker.ToolRequest{Raw: map[string]interface{}{"n": 5}}
	if got := rawString(req, "n"); got != "" {
		t.Errorf("rawString = %q, want empty string for a non-string value", got)
	}
}

func TestAppendFileListNoopWhenEmpty(t *testing.T) {
	got := appendFileList("just the prompt", nil, nil)
	if got != "just the prompt" {
		t.Errorf("appendFileList = %q, want unchanged prompt", got)
	}
}

func TestAppendFileListIncludesBothFilesAndImages(t *testing.T) {
	got := appendFileList("prompt", []string{"/a.go"}, []string{"/b.png"})
	for _, want := range []string{"/a.go", "/b.png", "Files:", "Images:"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got %q", want, got)
		}
	}
}
