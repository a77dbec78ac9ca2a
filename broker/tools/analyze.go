package tools

import "github.com/modelbroker/mcp-broker/broker"

// Analyze answers open-ended questions about a codebase's structure or
// behavior without proposing a change, declared reasoning-category since
// its typical use (architecture/dependency analysis) benefits from a
// deeper model over a fast one.
func Analyze() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:               "analyze",
		Description:        "Analyzes the given files to answer a question about structure, dependencies, or behavior.",
		Category:           broker.CategoryReasoning,
		RequiresModel:      true,
		DefaultTemperature: 0.3,
		PromptField:        "question",
		Schema: buildSchema(map[string]interface{}{
			"question": stringProp("what to analyze or answer about the attached files"),
		}, []string{"question"}),
		SystemPrompt: func(req broker.ToolRequest) string {
			return "You analyze code to answer questions. Cite the specific files and lines your answer depends on."
		},
		BuildUserPrompt: func(req broker.ToolRequest) string {
			return appendFileList(rawString(req, "question"), req.Files, req.Images)
		},
		PostProcess: detectSentinel,
	}
}
