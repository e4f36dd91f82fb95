// Package optionalize derives "optional" companion struct types: for a
// struct T it generates TOptional, where every field whose type is not
// already the Optional wrapper is wrapped in it, and already-wrapped fields
// pass through unchanged. The transform runs at build time, typically under
// go generate via cmd/optionalize, and holds no state across invocations.
package optionalize

import (
	"context"

	"github.com/goliatone/go-optionalize/internal/goparser"
	"github.com/goliatone/go-optionalize/internal/projection"
	"github.com/goliatone/go-optionalize/pkg/generator"
	"github.com/goliatone/go-optionalize/pkg/renderers/gosource"
	"github.com/goliatone/go-optionalize/pkg/schema"
)

// Record aliases the schema IR exported via the root package for convenience.
type Record = schema.Record

// Field is one named, typed field of a Record.
type Field = schema.Field

// TypeExpr is a field's declared type expression.
type TypeExpr = schema.TypeExpr

// NotARecordError reports a declaration that cannot be optionalized.
type NotARecordError = schema.NotARecordError

// DeriveMarker is the comment directive that selects a struct for generation.
const DeriveMarker = goparser.DeriveMarker

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// Generate parses the source, projects the requested types (or the marked
// ones when types is empty), and renders the generated companion file. It is
// the simplest entry point for callers that just want output bytes.
func Generate(ctx context.Context, source schema.Source, types []string, options ...generator.Option) ([]byte, error) {
	gen := generator.New(options...)
	return gen.Generate(ctx, generator.Request{
		Source: source,
		Types:  types,
	})
}

// ParseType parses source holding exactly one bare type declaration into a
// Record, failing with *NotARecordError when it is not a plain struct.
func ParseType(src string) (Record, error) {
	return goparser.ParseType(src)
}

// Project returns the optional projection of a record. It is total: every
// field type is either already optional or wrappable.
func Project(record Record) Record {
	return projection.Project(record)
}

// RenderDecl renders a projected record as a single self-contained type
// declaration.
func RenderDecl(record Record) ([]byte, error) {
	return gosource.RenderDecl(record)
}
