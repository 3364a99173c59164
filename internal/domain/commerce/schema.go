package commerce

import "github.com/xeipuuv/gojsonschema"

// Response shapes, declared up front and compiled once. Unknown fields are allowed;
// the backend may add fields without breaking the server.

type schemaNode = map[string]any

// maxExactInteger is the largest integer a JSON number carries without loss (2^53-1).
const maxExactInteger = 1<<53 - 1

var (
	stringField         = schemaNode{"type": "string"}
	nullableStringField = schemaNode{"type": []string{"string", "null"}}
	numberField         = schemaNode{"type": "number"}
	integerField        = schemaNode{"type": "integer", "minimum": -maxExactInteger, "maximum": maxExactInteger}
	emailField          = schemaNode{"type": "string", "format": "email"}
)

func object(properties map[string]schemaNode, required ...string) schemaNode {
	props := make(map[string]any, len(properties))
	for name, node := range properties {
		props[name] = node
	}
	node := schemaNode{"type": "object", "properties": props}
	if len(required) > 0 {
		node["required"] = required
	}
	return node
}

func arrayOf(items schemaNode) schemaNode {
	return schemaNode{"type": "array", "items": items}
}

var (
	orderNode = object(map[string]schemaNode{
		"full_name": stringField,
		"email":     emailField,
		"address":   stringField,
		"city":      stringField,
		"country":   stringField,
		"status":    stringField,
		"id":        stringField,
		"user_id":   stringField,
	}, "full_name", "email", "address", "city", "country", "status", "id", "user_id")

	orderItemNode = object(map[string]schemaNode{
		"name":               stringField,
		"image_url":          nullableStringField,
		"price":              numberField,
		"quantity":           integerField,
		"id":                 stringField,
		"order_id":           stringField,
		"product_id":         stringField,
		"product_variant_id": stringField,
	}, "name", "price", "id", "order_id", "product_id", "product_variant_id")

	orderDataNode = object(map[string]schemaNode{
		"order":       orderNode,
		"order_items": arrayOf(orderItemNode),
	}, "order", "order_items")

	returnRequestNode = object(map[string]schemaNode{
		"status":   stringField,
		"reason":   stringField,
		"order_id": stringField,
		"id":       stringField,
		"user_id":  stringField,
	}, "status", "reason", "order_id", "id", "user_id")

	returnItemNode = object(map[string]schemaNode{
		"quantity":      integerField,
		"reason":        nullableStringField,
		"order_item_id": stringField,
		"id":            stringField,
		"return_id":     stringField,
	}, "quantity", "order_item_id", "id", "return_id")

	returnRecordNode = object(map[string]schemaNode{
		"return_request": returnRequestNode,
		"items":          arrayOf(returnItemNode),
	}, "return_request", "items")

	storefrontVariantNode = object(map[string]schemaNode{
		"id":       stringField,
		"size":     stringField,
		"size_id":  stringField,
		"color":    stringField,
		"color_id": stringField,
		"price":    numberField,
	}, "id", "size", "size_id", "color", "color_id", "price")

	storefrontProductNode = object(map[string]schemaNode{
		"id":            stringField,
		"name":          stringField,
		"brand":         stringField,
		"description":   stringField,
		"category_name": stringField,
		"variants":      arrayOf(storefrontVariantNode),
	}, "id", "name", "brand", "description", "category_name", "variants")

	storefrontNode = object(map[string]schemaNode{
		"products": arrayOf(storefrontProductNode),
	}, "products")
)

var (
	orderListSchema    = mustCompile(arrayOf(orderDataNode))
	returnListSchema   = mustCompile(arrayOf(returnRecordNode))
	returnRecordSchema = mustCompile(returnRecordNode)
	storefrontSchema   = mustCompile(storefrontNode)
)

func mustCompile(node schemaNode) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(node))
	if err != nil {
		panic("commerce: invalid response schema: " + err.Error())
	}
	return schema
}
