// Package tools holds the fixed catalog of MCP tools this server
// exposes (§1 of the design: chat, thinkdeep, codereview, debug,
// analyze, precommit, testgen, refactor, tracer, consensus, planner,
// seer, listmodels, version). Each file here builds one *broker.ToolSpec
// — grounded on agent/tool.go's declarative builder, adapted from
// "function the model calls" to "MCP tool the client calls".
package tools

import "github.com/modelbroker/mcp-broker/broker"

// stringProp is the JSON-Schema shape for a plain string property.
func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func stringArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

// commonProperties is merged into every model-backed tool's schema: the
// fields every tool call shares regardless of which tool it is (§3).
func commonProperties() map[string]interface{} {
	return map[string]interface{}{
		"model":          stringProp("model alias, canonical name, or \"auto\" to let the server choose"),
		"temperature":    map[string]interface{}{"type": "number", "description": "sampling temperature; corrected to the model's policy if out of range"},
		"thinkingMode":   map[string]interface{}{"type": "string", "enum": []string{"minimal", "low", "medium", "high", "max"}, "description": "requested reasoning depth, honored by models that support extended thinking"},
		"continuationId": stringProp("id of a prior conversation thread to continue"),
		"files":          stringArrayProp("absolute paths of files to include as context"),
		"images":         stringArrayProp("absolute paths of images to include as context"),
		"imagesTotalBytes": map[string]interface{}{
			"type": "number", "minimum": 0,
			"description": "combined byte size of the resolved images, checked against the selected model's image size ceiling",
		},
		"useWebSearch": map[string]interface{}{"type": "boolean", "description": "allow the model to use built-in web search if it supports one"},
	}
}

// buildSchema merges a tool's own properties and required list with the
// common ones, then compiles the result.
func buildSchema(own map[string]interface{}, required []string) *broker.CompiledSchema {
	props := commonProperties()
	for k, v := range own {
		props[k] = v
	}
	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	compiled, err := broker.CompileSchema(schema)
	if err != nil {
		// Every schema here is a fixed literal known at compile time; a
		// failure means a programming error in this file, not a runtime
		// condition a caller can correct.
		panic(err)
	}
	return compiled
}
