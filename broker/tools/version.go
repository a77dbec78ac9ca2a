package tools

import (
	"fmt"
	"strings"

	"github.com/modelbroker/mcp-broker/broker"
)

// serverVersion is bumped by hand on release; there is no build-time
// injection step in this repo.
const serverVersion = "0.1.0"

// Version reports a static build descriptor: module path, registered
// tool names, and which provider types are configured. Deterministic,
// no provider call (§3 supplement).
func Version() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:          "version",
		Description:   "Reports the server version, registered tool catalog, and configured provider types.",
		Category:      broker.CategoryBalanced,
		RequiresModel: false,
		Schema:        buildSchema(nil, nil),
		StaticResponse: func(k *broker.Kernel, req broker.ToolRequest) (broker.ToolResponse, error) {
			var toolNames []string
			for _, t := range k.ListTools() {
				toolNames = append(toolNames, t.Name)
			}

			var providerTypes []string
			for _, p := range k.Registry.Providers() {
				providerTypes = append(providerTypes, string(p.Type()))
			}

			body := fmt.Sprintf(
				"module: github.com/modelbroker/mcp-broker\nversion: %s\ntools: %s\nproviders: %s\n",
				serverVersion,
				strings.Join(toolNames, ", "),
				strings.Join(providerTypes, ", "),
			)
			warnings := k.Restrictions.Warnings()
			if len(warnings) > 0 {
				body += fmt.Sprintf("restriction warnings:\n  - %s\n", strings.Join(warnings, "\n  - "))
			}
			return broker.ToolResponse{
				Content:     body,
				ContentType: broker.ContentText,
				Status:      broker.StatusSuccess,
				Structured:  map[string]interface{}{"restrictionWarnings": warnings},
			}, nil
		},
	}
}
