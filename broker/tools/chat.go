package tools

import "github.com/modelbroker/mcp-broker/broker"

// Chat is a general-purpose conversational tool: balanced category,
// no structured post-processing, the default starting point for a
// session that may later continue into a more specialized tool.
func Chat() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "chat",
		Description:        "General conversation and brainstorming with a selected or auto-chosen model.",
		Category:           broker.CategoryBalanced,
		RequiresModel:      true,
		DefaultTemperature: 0.7,
		PromptField:        "prompt",
		Schema: buildSchema(map[string]interface{}{
			"prompt": stringProp("the message to send"),
		}, []string{"prompt"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You are a helpful assistant having an open-ended conversation with a developer. Be direct and concise."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "prompt"), req.Files, req.Images)
		},
	}
}
