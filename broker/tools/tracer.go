package tools

import "github.com/modelbroker/mcp-broker/broker"

// Tracer walks an execution or dependency path through the given files,
// e.g. "what calls this function and what does it call in turn".
func Tracer() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "tracer",
		Description:        "Traces a call path or data flow through the given files.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "target",
		Schema: buildSchema(map[string]interface{}{
			"target": stringProp("the function, type, or flow to trace"),
		}, []string{"target", "files"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You trace execution paths precisely. State each hop (caller -> callee, or producer -> consumer) in order. " +
				"If the trace leaves the attached files, respond with only " +
				`{"status":"more_files_needed","filesNeeded":["..."]}` + " and nothing else."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "target"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
