package tools

import (
	"fmt"
	"strings"

	"github.com/modelbroker/mcp-broker/broker"
)

// ListModels materializes the full registry view: every canonical model
// name, which provider claims it, and its declared category — the
// supplemented introspection tool SPEC_FULL.md adds so an operator can
// see restrictions/catalog-overrides take effect without reading logs.
func ListModels() *broker.ToolSpec {
	return &broker.ToolSpec{
		Name:          "listmodels",
		Description:   "Lists every model currently resolvable by this server, grouped by provider.",
		Category:      broker.CategoryBalanced,
		RequiresModel: false,
		Schema:        buildSchema(nil, nil),
		StaticResponse: func(k *broker.Kernel, req broker.ToolRequest) (broker.ToolResponse, error) {
			var sb strings.Builder
			for _, p := range k.Registry.Providers() {
				names := p.ListModels()
				if len(names) == 0 {
					continue
				}
				fmt.Fprintf(&sb, "%s (%s):\n", p.FriendlyName(), k.Registry.Status(p))
				for _, name := range names {
					caps, _ := p.Capabilities(name)
					fmt.Fprintf(&sb, "  - %s  [%s, %d ctx tokens]\n", name, caps.Category, caps.ContextTokens)
				}
			}
			if sb.Len() == 0 {
				sb.WriteString("no models are currently resolvable")
			}
			warnings := k.Restrictions.Warnings()
			if len(warnings) > 0 {
				fmt.Fprintf(&sb, "\nrestriction warnings:\n")
				for _, w := range warnings {
					fmt.Fprintf(&sb, "  - %s\n", w)
				}
			}
			return broker.ToolResponse{
				Content:     sb.String(),
				ContentType: broker.ContentText,
				Status:      broker.StatusSuccess,
				Structured:  map[string]interface{}{"restrictionWarnings": warnings},
			}, nil
		},
	}
}
