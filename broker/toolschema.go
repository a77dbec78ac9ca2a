package broker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CompiledSchema wraps a compiled JSON Schema for one tool's input,
// giving the kernel a uniform validation call regardless of which tool
// is being invoked (§4.10 step 1, §9: "declarative schemas ... kernel
// validates uniformly").
type CompiledSchema struct {
	raw      map[string]interface{}
	compiled *jsonschema.Schema
}

// CompileSchema compiles a raw JSON-Schema-shaped map once at tool
// registration time.
func CompileSchema(schema map[string]interface{}) (*CompiledSchema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const resourceURL = "mem://tool-schema.json"
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &CompiledSchema{raw: schema, compiled: compiled}, nil
}

// Raw returns the schema as a plain map, the shape `tools/list` reports.
func (s *CompiledSchema) Raw() map[string]interface{} { return s.raw }

// Validate checks args against the compiled schema, returning a
// *ToolError of kind invalidRequest naming the offending field on
// failure (§4.10 step 1).
func (s *CompiledSchema) Validate(toolName string, args map[string]interface{}) error {
	if err := s.compiled.Validate(args); err != nil {
		var field string
		if verr, ok := err.(*jsonschema.ValidationError); ok && len(verr.Causes) > 0 {
			field = fmt.Sprint(verr.Causes[0].InstanceLocation)
		}
		hint := "check the request against the tool's input schema"
		if field != "" {
			hint = fmt.Sprintf("offending field: %s", field)
		}
		return &ToolError{Kind: KindInvalidRequest, Tool: toolName, Message: err.Error(), Hint: hint}
	}
	return nil
}
