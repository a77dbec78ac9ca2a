package tools

import (
	"fmt"
	"strings"

	"github.com/modelbroker/mcp-broker/broker"
)

// rawString pulls a tool-specific string field out of the request's raw
// argument map.
func rawString(req broker.ToolRequest, key string) string {
	v, _ := req.Raw[key].(string)
	return v
}

// appendFileList renders a files/images section appended after a tool's
// own prompt, shared across every tool that accepts file/image context.
func appendFileList(prompt string, files, images []string) string {
	if len(files) == 0 && len(images) == 0 {
		return prompt
	}
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\n")
	if len(files) > 0 {
		fmt.Fprintf(&sb, "Files:\n")
		for _, f := range files {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	if len(images) > 0 {
		fmt.Fprintf(&sb, "Images:\n")
		for _, img := range images {
			fmt.Fprintf(&sb, "- %s\n", img)
		}
	}
	return sb.String()
}
