package tools

import "github.com/modelbroker/mcp-broker/broker"

// Seer answers a question about one or more attached images, always
// routed to a vision-capable model regardless of the default category
// table (§4.6: vision requests bypass the normal category ranking).
func Seer() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "seer",
		Description:        "Answers a question about one or more attached images.",
		Category:           broker.CategoryVision,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "question",
		Schema: buildSchema(map[string]interface{}{
			"question": stringProp("what to look for or answer about the attached images"),
		}, []string{"question", "images"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You describe and answer questions about the attached images precisely. State what you can and cannot determine from the image alone."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "question"), req.Files, req.Images)
		},
	}
}
