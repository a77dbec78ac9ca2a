package tools

import "github.com/modelbroker/mcp-broker/broker"

// Consensus asks a single extended-reasoning model to weigh a decision
// from multiple declared stances and report where they agree and
// disagree. The higher default temperature (vs. the 0.3 used by the
// correctness-focused tools) favors a wider spread of argument over a
// single best guess.
func Consensus() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "consensus",
		Description:        "Evaluates a decision from multiple stances and reports where they agree and disagree.",
		Category:           broker.CategoryExtendedReasoning,
		RequiresModel:      true,
		DefaultTemperature: 1.0,
		PromptField:        "question",
		Schema: buildSchema(map[string]interface{}{
			"question": stringProp("the decision or question to evaluate"),
			"stances":  stringArrayProp("named perspectives to evaluate from, e.g. \"security\", \"ux\", \"cost\""),
		}, []string{"question"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You evaluate a question from each given stance in turn, then summarize points of agreement and " +
				"genuine disagreement. Don't manufacture disagreement where the stances would actually agree."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			prompt := rawString(req, "question")
			if stances := req.Raw["stances"]; stances != nil {
				if arr, ok := stances.([]interface{}); ok && len(arr) > 0 {
					prompt += "\n\nStances to evaluate from:"
					for _, s := range arr {
						if name, ok := s.(string); ok {
							prompt += "\n- " + name
						}
					}
				}
			}
			return appendFileList(prompt, req.Files, req.Images)
		},
	}
}
