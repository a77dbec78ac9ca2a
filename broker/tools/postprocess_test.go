package tools

import (
	"testing"

	"github.com/modelbroker/mcp-broker/broker"
)

func TestDetectSentinelMoreFilesNeeded(t *testing.T) {
	content := `{"status":"more_files_needed","filesNeeded":["/a.go","/b.go"]} some trailing text`
	status, structured, ok := detectSentinel(content)
	if !ok {
		t.Fatal("expected sentinel to be detected")
	}
	if status != broker.ToolStatus("moreFilesNeeded") {
		t.Errorf("status = %v, want moreFilesNeeded", status)
	}
	needed, _ := structured["filesNeeded"].([]interface{})
	if len(needed) != 2 {
		t.Errorf("filesNeeded = %v, want 2 entries", needed)
	}
}

func TestDetectSentinelTestSampleNeeded(t *testing.T) {
	content := `{"status":"test-sample-needed","reason":"need a passing test run to model the harness"}`
	status, structured, ok := detectSentinel(content)
	if !ok {
		t.Fatal("expected sentinel to be detected")
	}
	if status != broker.ToolStatus("testSampleNeeded") {
		t.Errorf("status = %v, want testSampleNeeded", status)
	}
	if structured["reason"] == "" {
		t.Error("expected the structured payload to be returned alongside the status")
	}
}

func TestDetectSentinelOrdinaryProseIsNotSentinel(t *testing.T) {
	_, _, ok := detectSentinel("Just a plain response with no JSON prefix.")
	if ok {
		t.Error("expected ordinary prose to not be detected as a sentinel")
	}
}

func TestDetectSentinelUnknownStatusIsNotSentinel(t *testing.T) {
	_, _, ok := detectSentinel(`{"status":"something_else"}`)
	if ok {
		t.Error("expected an unrecognized status to not be treated as a sentinel")
	}
}

func TestDetectSentinelMalformedJSONIsNotSentinel(t *testing.T) {
	_, _, ok := detectSentinel(`{"status": "more_files_needed" not valid json`)
	if ok {
		t.Error("expected malformed JSON to not be detected as a sentinel")
	}
}
