package tools

import "github.com/modelbroker/mcp-broker/broker"

func CodeReview() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "codereview",
		Description:        "Reviews the given files for correctness, style, and risk; may ask for more files before finishing.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "instructions",
		Schema: buildSchema(map[string]interface{}{
			"instructions": stringProp("what to focus the review on"),
		}, []string{"files"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You are an exacting code reviewer. Flag correctness bugs, security issues, and unclear naming. " +
				"If the files given are not enough to be confident, respond with only " +
				`{"status":"more_files_needed","filesNeeded":["..."]}` + " and nothing else."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			instructions := rawString(req, "instructions")
			if instructions == "" {
				instructions = "Review the attached files."
			}
			return appendFileList(instructions, req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
