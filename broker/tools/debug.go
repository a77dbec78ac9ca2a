package tools

import "github.com/modelbroker/mcp-broker/broker"

func Debug() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "debug",
		Description:        "Root-causes a bug from a description, stack trace, or failing test, given relevant files.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "symptoms",
		Schema: buildSchema(map[string]interface{}{
			"symptoms": stringProp("the bug description, error message, or stack trace"),
		}, []string{"symptoms"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You are debugging a reported failure. Reason from symptoms to a root cause before proposing a fix. " +
				"If you need to see more of the codebase to continue, respond with only " +
				`{"status":"more_files_needed","filesNeeded":["..."]}` + " and nothing else."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "symptoms"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
