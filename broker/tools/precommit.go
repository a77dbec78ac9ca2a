package tools

import "github.com/modelbroker/mcp-broker/broker"

// Precommit reviews a pending change set (typically a diff plus touched
// files) before it's committed, the same shape as codereview but scoped
// to "is this change safe to ship right now".
func Precommit() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "precommit",
		Description:        "Reviews a pending change set for correctness and completeness before it is committed.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "diff",
		Schema: buildSchema(map[string]interface{}{
			"diff": stringProp("the diff or change summary under review"),
		}, []string{"diff"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You are gatekeeping a commit. Look for missing tests, half-finished changes, and anything that " +
				"contradicts the stated intent. If the diff references files not attached, respond with only " +
				`{"status":"more_files_needed","filesNeeded":["..."]}` + " and nothing else."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "diff"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
