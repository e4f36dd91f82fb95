package schema

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"
)

const (
	// WrapperName is the single recognized optional wrapper constructor.
	// Classification matches on this name syntactically; a type that is
	// optional through a differently named alias is treated as non-optional
	// and wrapped again.
	WrapperName = "Optional"

	// WrapperQualifier is the package qualifier used when wrapping a type
	// expression in the canonical constructor.
	WrapperQualifier = "optional"

	// DerivedSuffix is appended to a record name to form its projection name.
	DerivedSuffix = "Optional"
)

// DefaultWrapperImport is the import path generated files use to reach the
// canonical wrapper type.
const DefaultWrapperImport = "github.com/goliatone/go-optionalize/pkg/optional"

// TypeExpr is a field's declared type, held as source text. It is classified
// once at construction and never normalized beyond whitespace trimming, so
// rendering reproduces the expression exactly as written.
type TypeExpr struct {
	src      string
	optional bool
}

// NewTypeExpr wraps the supplied type expression source text.
func NewTypeExpr(src string) TypeExpr {
	trimmed := strings.TrimSpace(src)
	return TypeExpr{src: trimmed, optional: isOptionalExpr(trimmed)}
}

// String returns the expression source text.
func (t TypeExpr) String() string {
	return t.src
}

// Equal reports whether two expressions have identical source text.
func (t TypeExpr) Equal(other TypeExpr) bool {
	return t.src == other.src
}

// IsOptional reports whether the expression is the optional wrapper applied
// to an inner type: a generic instantiation whose constructor's final name
// segment is WrapperName, bare or package qualified.
func (t TypeExpr) IsOptional() bool {
	return t.optional
}

// Wrap returns the expression wrapped in the canonical optional constructor.
// Already optional expressions are returned unchanged so projection never
// double-wraps.
func (t TypeExpr) Wrap() TypeExpr {
	if t.optional {
		return t
	}
	return NewTypeExpr(WrapperQualifier + "." + WrapperName + "[" + t.src + "]")
}

// Qualifiers returns the package qualifiers the expression references, in
// discovery order without duplicates. Generators resolve these against the
// source file's import table so generated output imports what its field
// types need.
func (t TypeExpr) Qualifiers() []string {
	expr, err := parser.ParseExpr(t.src)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	ast.Inspect(expr, func(node ast.Node) bool {
		sel, ok := node.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			if _, dup := seen[ident.Name]; !dup {
				seen[ident.Name] = struct{}{}
				out = append(out, ident.Name)
			}
		}
		return true
	})
	return out
}

// Uses reports whether the expression references the supplied package
// qualifier anywhere in its syntax tree.
func (t TypeExpr) Uses(qualifier string) bool {
	for _, qual := range t.Qualifiers() {
		if qual == qualifier {
			return true
		}
	}
	return false
}

func isOptionalExpr(src string) bool {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return false
	}
	idx, ok := expr.(*ast.IndexExpr)
	if !ok {
		return false
	}
	switch fn := idx.X.(type) {
	case *ast.Ident:
		return fn.Name == WrapperName
	case *ast.SelectorExpr:
		return fn.Sel != nil && fn.Sel.Name == WrapperName
	}
	return false
}

// Field pairs a name with a declared type. Tag carries the raw struct tag
// literal, backquotes included, or the empty string when absent. Fields are
// value types and never mutated after construction.
type Field struct {
	Name string
	Type TypeExpr
	Tag  string
}

// Record is the structural description of a record type: a name plus an
// ordered field list. Declaration order is part of the type's public shape
// and is preserved through projection and rendering.
type Record struct {
	Name   string
	Fields []Field
}

// NewRecord builds a Record, enforcing the unique-field-name invariant.
// A zero-field record is legal. Blank fields are exempt from the uniqueness
// check, mirroring the language rule.
func NewRecord(name string, fields []Field) (Record, error) {
	if strings.TrimSpace(name) == "" {
		return Record{}, fmt.Errorf("schema: record name is required")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "_" {
			continue
		}
		if _, exists := seen[field.Name]; exists {
			return Record{}, fmt.Errorf("schema: duplicate field %q in %s", field.Name, name)
		}
		seen[field.Name] = struct{}{}
	}
	return Record{Name: name, Fields: fields}, nil
}

// MustNewRecord panics if the record is invalid. Useful for tests.
func MustNewRecord(name string, fields []Field) Record {
	record, err := NewRecord(name, fields)
	if err != nil {
		panic(err)
	}
	return record
}

// FieldNames returns the field names in declaration order.
func (r Record) FieldNames() []string {
	if len(r.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Fields))
	for _, field := range r.Fields {
		names = append(names, field.Name)
	}
	return names
}
