package tools

import "github.com/modelbroker/mcp-broker/broker"

// ThinkDeep runs an extended-reasoning pass over a problem statement,
// handing off to whatever model the registry ranks highest in the
// extendedReasoning category.
func ThinkDeep() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "thinkdeep",
		Description:        "Extended reasoning over a hard problem, using an extended-thinking-capable model.",
		Category:           broker.CategoryExtendedReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.7,
		PromptField:        "problem",
		Schema: buildSchema(map[string]interface{}{
			"problem": stringProp("the problem statement to reason through"),
			"focus":   stringProp("optional area to focus the reasoning on"),
		}, []string{"problem"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You are a careful reasoner. Work through the problem step by step before giving a final answer. State assumptions explicitly."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			prompt := rawString(req, "problem")
			if focus := rawString(req, "focus"); focus != "" {
				prompt += "\n\nFocus area: " + focus
			}
			return appendFileList(prompt, req.Files, req.Images)
		},
	}
}
