package tools

import "github.com/modelbroker/mcp-broker/broker"

func Refactor() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "refactor",
		Description:        "Proposes a refactor for the given files toward a stated goal, without changing behavior.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "goal",
		Schema: buildSchema(map[string]interface{}{
			"goal": stringProp("what the refactor should achieve"),
		}, []string{"goal", "files"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You propose refactors. Preserve external behavior unless told otherwise. Call out any risk the change introduces."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "goal"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
