package tools

import "github.com/modelbroker/mcp-broker/broker"

// Planner breaks a goal into an ordered set of steps. Declared balanced
// rather than reasoning: decomposition benefits less from deep
// reasoning than the correctness-critical tools do, and a faster model
// keeps multi-step planning sessions responsive.
func Planner() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "planner",
		Description:        "Breaks a goal into an ordered, actionable set of steps.",
		Category:           broker.CategoryBalanced,
		RequiresModel:      true,
		DefaultTemperature: 0.7,
		PromptField:        "goal",
		Schema: buildSchema(map[string]interface{}{
			"goal": stringProp("the goal to plan toward"),
		}, []string{"goal"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You produce ordered, numbered plans. Each step should be independently actionable and name what it depends on."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "goal"), req.Files, req.Images)
		},
	}
}
