package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrToolExecutorAlreadyRegistered = errors.New("tool executor already registered")
	ErrToolExecutorNotRegistered     = errors.New("tool executor not registered")
	ErrToolDefinitionInvalid         = errors.New("tool definition invalid")
	ErrToolValidationFailed          = errors.New("tool params validation failed")
)

// ToolDefinition describes a tool to the calling agent.
type ToolDefinition struct {
	Name        string
	Title       string
	Description string
	InputSchema json.RawMessage
	// ReadOnly marks tools that never change backend state.
	ReadOnly bool
}

type registeredTool struct {
	def      ToolDefinition
	executor ToolExecutor
	schema   *gojsonschema.Schema
}

// ToolRegistry is the process-wide name → executor table. It is populated once at
// startup and only read afterwards, so lookups need no locking.
type ToolRegistry struct {
	order []string
	tools map[string]*registeredTool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]*registeredTool)}
}

// Register adds executor under def.Name. The input schema is compiled up front so
// a broken definition fails at startup rather than on the first call.
func (r *ToolRegistry) Register(def ToolDefinition, executor ToolExecutor) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" || executor == nil {
		return ErrToolExecutorNotRegistered
	}
	if _, exists := r.tools[def.Name]; exists {
		return ErrToolExecutorAlreadyRegistered
	}

	if len(def.InputSchema) == 0 {
		def.InputSchema = json.RawMessage(`{"type":"object","properties":{}}`)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(def.InputSchema))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrToolDefinitionInvalid, def.Name, err)
	}

	r.tools[def.Name] = &registeredTool{def: def, executor: executor, schema: schema}
	r.order = append(r.order, def.Name)
	return nil
}

func (r *ToolRegistry) Get(name string) (ToolExecutor, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, ErrToolExecutorNotRegistered
	}
	return t.executor, nil
}

// Definitions lists tool definitions in registration order.
func (r *ToolRegistry) Definitions() []ToolDefinition {
	out := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].def)
	}
	return out
}

// ValidateParams checks params against the tool's input schema.
func (r *ToolRegistry) ValidateParams(toolName string, params json.RawMessage) error {
	t, ok := r.tools[toolName]
	if !ok {
		return ErrToolExecutorNotRegistered
	}
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	result, err := t.schema.Validate(gojsonschema.NewBytesLoader(params))
	if err != nil {
		return fmt.Errorf("%w: params must be a json object", ErrToolValidationFailed)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		sort.Strings(msgs)
		return fmt.Errorf("%w: %s", ErrToolValidationFailed, strings.Join(msgs, "; "))
	}
	return nil
}

// Call validates params and runs the named tool. Unknown tools and invalid params
// come back as Failure results.
func (r *ToolRegistry) Call(ctx context.Context, toolName string, params json.RawMessage) Result {
	executor, err := r.Get(toolName)
	if err != nil {
		return Failure(fmt.Sprintf("unknown tool %q", toolName))
	}
	if err := r.ValidateParams(toolName, params); err != nil {
		return Failure("invalid arguments: " + err.Error())
	}
	return executor.Execute(ctx, params)
}
