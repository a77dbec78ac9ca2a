package tools

import "github.com/modelbroker/mcp-broker/broker"

func TestGen() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "testgen",
		Description:        "Generates tests for the given files, following the project's existing test style.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "scope",
		Schema: buildSchema(map[string]interface{}{
			"scope": stringProp("what to cover (a function, a file, a behavior)"),
		}, []string{"scope", "files"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You write tests matching the style already present in the attached files. Cover edge cases; skip " +
				"mechanical marshal/unmarshal-only round trips unless asked."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "scope"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
