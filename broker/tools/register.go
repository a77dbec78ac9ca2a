package tools

import "github.com/modelbroker/mcp-broker/broker"

// RegisterAll wires the fixed tool catalog (§1) into a Kernel. Called
// once at process startup, after the Kernel itself is constructed.
func RegisterAll(k *broker.Kernel) {
	k.RegisterTool(Chat())
	k.RegisterTool(ThinkDeep())
	k.RegisterTool(CodeReview())
	k.RegisterTool(Debug())
	k.RegisterTool(Analyze())
	k.RegisterTool(Precommit())
	k.RegisterTool(TestGen())
	k.RegisterTool(Refactor())
	k.RegisterTool(Tracer())
	k.RegisterTool(Consensus())
	k.RegisterTool(Planner())
	k.RegisterTool(Seer())
	k.RegisterTool(ListModels())
	k.RegisterTool(Version())
}
