// Package render defines the output contract shared by renderers and the
// registry that generators use to discover them.
package render

import (
	"context"

	"github.com/goliatone/go-optionalize/pkg/schema"
)

// Import is one entry of a generated file's import clause. Name is the local
// alias, empty when the package's own name serves as the qualifier.
type Import struct {
	Name string
	Path string
}

// File describes one generated output unit: the target package, the origin
// of the input declarations, the imports the projected field types need, and
// the projected records to emit. When Imports is empty a renderer may fall
// back to inferring the wrapper import from the field types alone.
type File struct {
	Package string
	Source  string
	Imports []Import
	Records []schema.Record
}

// Options carries renderer configuration that callers may override per
// generator rather than per request.
type Options struct {
	// WrapperImport overrides the import path for the optional wrapper type.
	WrapperImport string
	// Header overrides the generated-code header comment.
	Header string
}

// Renderer converts projected records into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, file File, opts Options) ([]byte, error)
}
