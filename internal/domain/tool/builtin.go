package tool

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/domain/commerce"
)

const (
	BuiltinListUserOrders   = "list_user_orders"
	BuiltinListUserReturns  = "list_all_user_returns"
	BuiltinCreateUserReturn = "create_user_return"
	BuiltinListStorefront   = "list_hole_storefront_data"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CommerceAPI is the backend surface the built-in tools call.
type CommerceAPI interface {
	ListUserOrders(ctx context.Context, token string) (*commerce.OrderListData, error)
	ListUserReturns(ctx context.Context, token string) ([]commerce.ReturnRecord, error)
	CreateUserReturn(ctx context.Context, submission commerce.ReturnSubmission, token string) (*commerce.ReturnRecord, error)
	ListStorefront(ctx context.Context) (*commerce.StorefrontCatalog, error)
}

type BuiltinServices struct {
	Commerce CommerceAPI
}

type catalogFile struct {
	Tools []catalogEntry `yaml:"tools"`
}

type catalogEntry struct {
	Name        string         `yaml:"name"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	ReadOnly    bool           `yaml:"read_only"`
	InputSchema map[string]any `yaml:"input_schema"`
}

func builtinDefinitions() (map[string]ToolDefinition, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (map[string]ToolDefinition, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tool catalog: %w", err)
	}

	defs := make(map[string]ToolDefinition, len(file.Tools))
	for _, entry := range file.Tools {
		schema, err := json.Marshal(entry.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: encode input schema: %w", entry.Name, err)
		}
		defs[entry.Name] = ToolDefinition{
			Name:        entry.Name,
			Title:       entry.Title,
			Description: entry.Description,
			InputSchema: schema,
			ReadOnly:    entry.ReadOnly,
		}
	}
	return defs, nil
}

// RegisterBuiltInExecutors wires every MemCommerce tool into registry, in a fixed order.
func RegisterBuiltInExecutors(registry *ToolRegistry, services BuiltinServices) error {
	defs, err := builtinDefinitions()
	if err != nil {
		return err
	}

	registrations := []struct {
		name     string
		executor ToolExecutor
	}{
		{name: BuiltinListUserOrders, executor: NewListUserOrdersExecutor(services.Commerce)},
		{name: BuiltinListUserReturns, executor: NewListUserReturnsExecutor(services.Commerce)},
		{name: BuiltinCreateUserReturn, executor: NewCreateUserReturnExecutor(services.Commerce)},
		{name: BuiltinListStorefront, executor: NewListStorefrontExecutor(services.Commerce)},
	}

	for _, registration := range registrations {
		def, ok := defs[registration.name]
		if !ok {
			return fmt.Errorf("%w: %s missing from catalog", ErrToolDefinitionInvalid, registration.name)
		}
		if err := registry.Register(def, registration.executor); err != nil {
			return err
		}
	}
	return nil
}
