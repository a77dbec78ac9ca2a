package tools

import (
	"encoding/json"
	"strings"

	"github.com/modelbroker/mcp-broker/broker"
)

// sentinelStatuses are the non-terminal structured statuses a model may
// emit as a leading JSON block to ask for more context before it can
// finish (§4.10 step 8). Anything else is treated as ordinary prose.
var sentinelStatuses = map[string]broker.ToolStatus{
	"more_files_needed":   broker.ToolStatus("moreFilesNeeded"),
	"needs_clarification": broker.StatusClarificationRequested,
	"test-sample-needed":  broker.ToolStatus("testSampleNeeded"),
}

// detectSentinel looks for a leading `{...}` block whose "status" field
// names one of sentinelStatuses. The tools that can ask for more context
// (analyze, codereview, debug, precommit, refactor, testgen, tracer) share
// this check rather than re-parsing JSON themselves.
func detectSentinel(content string) (status broker.ToolStatus, structured map[string]interface{}, ok bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return "", nil, false
	}
	end := matchingBrace(trimmed)
	if end < 0 {
		return "", nil, false
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed[:end+1]), &payload); err != nil {
		return "", nil, false
	}
	rawStatus, _ := payload["status"].(string)
	mapped, known := sentinelStatuses[rawStatus]
	if !known {
		return "", nil, false
	}
	return mapped, payload, true
}

// matchingBrace returns the index of the closing brace matching the
// first '{' in s, or -1 if unbalanced.
func matchingBrace(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
