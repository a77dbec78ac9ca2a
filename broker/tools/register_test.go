package tools

import (
	"testing"
)

func TestRegisterAllRegistersUniqueToolNames(t *testing.T) {
	kernel := newTestKernel(t)

	seen := make(map[string]bool)
	for _, spec := range kernel.ListTools() {
		if seen[spec.Name] {
			t.Errorf("duplicate tool name %q", spec.Name)
		}
		seen[spec.Name] = true
		if !spec.RequiresModel && spec.StaticResponse == nil {
			t.Errorf("tool %q declares RequiresModel=false but has no StaticResponse", spec.Name)
		}
		if spec.RequiresModel && spec.Schema == nil {
			t.Errorf("tool %q has no compiled schema", spec.Name)
		}
	}

	for _, want := range []string{"chat", "thinkdeep", "codereview", "debug", "analyze", "precommit", "testgen", "refactor", "tracer", "consensus", "planner", "seer", "listmodels", "version"} {
		if !seen[want] {
			t.Errorf("expected tool %q to be registered", want)
		}
	}
}
