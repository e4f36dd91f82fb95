// Package openapi converts OpenAPI 3 object schema components into record
// schemas so documents can feed the same projection pipeline as Go source.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-optionalize/pkg/schema"
)

const componentPrefix = "#/components/schemas/"

// Records loads an OpenAPI 3 document and converts the named schema
// components into records. Non-required properties arrive already wrapped in
// the optional constructor; required ones stay bare so projection wraps them.
// A component that is not an object schema fails with
// *schema.NotARecordError.
func Records(ctx context.Context, raw []byte, names []string) ([]schema.Record, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if len(names) == 0 {
		return nil, errors.New("openapi: at least one schema name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no schema components")
	}

	records := make([]schema.Record, 0, len(names))
	for _, name := range names {
		ref, ok := doc.Components.Schemas[name]
		if !ok {
			return nil, fmt.Errorf("openapi: schema %q not found", name)
		}
		record, err := convert(name, ref)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func convert(name string, ref *openapi3.SchemaRef) (schema.Record, error) {
	value := ref.Value
	if value == nil || !isObject(value) {
		return schema.Record{}, &schema.NotARecordError{TypeName: name}
	}

	required := make(map[string]struct{}, len(value.Required))
	for _, prop := range value.Required {
		required[prop] = struct{}{}
	}

	// JSON object keys carry no order; sort for deterministic output.
	props := make([]string, 0, len(value.Properties))
	for prop := range value.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)

	fields := make([]schema.Field, 0, len(props))
	for _, prop := range props {
		expr := schema.NewTypeExpr(goType(value.Properties[prop]))
		if _, ok := required[prop]; !ok {
			expr = expr.Wrap()
		}
		fields = append(fields, schema.Field{
			Name: exportName(prop),
			Type: expr,
			Tag:  fmt.Sprintf("`json:%q`", prop),
		})
	}

	record, err := schema.NewRecord(name, fields)
	if err != nil {
		return schema.Record{}, fmt.Errorf("openapi: %w", err)
	}
	return record, nil
}

func isObject(value *openapi3.Schema) bool {
	switch schemaType(value.Type) {
	case "object":
		return true
	case "":
		// Untyped schemas with properties are treated as objects.
		return len(value.Properties) > 0
	default:
		return false
	}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// goType maps a property schema to a Go type expression. References to other
// components map to the component name so generated code can lean on sibling
// generated types.
func goType(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return "any"
	}
	if ref.Ref != "" {
		return strings.TrimPrefix(ref.Ref, componentPrefix)
	}
	value := ref.Value
	if value == nil {
		return "any"
	}
	switch schemaType(value.Type) {
	case "string":
		if value.Format == "byte" {
			return "[]byte"
		}
		return "string"
	case "integer":
		if value.Format == "int32" {
			return "int32"
		}
		return "int64"
	case "number":
		if value.Format == "float" {
			return "float32"
		}
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]" + goType(value.Items)
	case "object":
		return "map[string]any"
	default:
		return "any"
	}
}

// exportName converts a property name into an exported Go field name,
// splitting on the separators common in JSON keys.
func exportName(prop string) string {
	parts := strings.FieldsFunc(prop, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	if len(parts) == 0 {
		return "Field"
	}
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
