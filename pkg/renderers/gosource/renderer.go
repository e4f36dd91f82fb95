// Package gosource renders projected records as a generated Go source file.
package gosource

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-optionalize/pkg/render"
	"github.com/goliatone/go-optionalize/pkg/schema"
)

//go:embed templates
var templatesFS embed.FS

// Name identifies the renderer in a registry.
const Name = "gosource"

// DefaultHeader marks generated files per the Go convention so tooling skips
// them.
const DefaultHeader = "// Code generated by optionalize; DO NOT EDIT."

const templatePath = "templates/file.go.tpl"

// Renderer emits one Go source file per render call, holding the package
// clause, the imports the field types reference, and one type declaration per
// projected record. Output is passed through go/format so it is always
// canonically formatted and parseable on its own.
type Renderer struct {
	set *pongo2.TemplateSet
}

// New constructs a Renderer backed by the embedded template.
func New() *Renderer {
	loader := pongo2.NewFSLoader(templatesFS)
	return &Renderer{set: pongo2.NewSet("optionalize", loader)}
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/x-go"
}

// Render implements render.Renderer. Rendering a valid projected record set
// cannot fail; errors indicate renderer misconfiguration or an invalid File.
func (r *Renderer) Render(ctx context.Context, file render.File, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(file.Package) == "" {
		return nil, errors.New("gosource: package name is required")
	}

	tmpl, err := r.set.FromFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("gosource: load template: %w", err)
	}

	records := make([]map[string]any, 0, len(file.Records))
	for _, record := range file.Records {
		fields := make([]map[string]any, 0, len(record.Fields))
		for _, field := range record.Fields {
			fields = append(fields, map[string]any{
				"name": field.Name,
				"type": field.Type.String(),
				"tag":  field.Tag,
			})
		}
		records = append(records, map[string]any{
			"name":   record.Name,
			"fields": fields,
		})
	}

	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}

	fileImports := file.Imports
	if len(fileImports) == 0 {
		fileImports = inferWrapperImport(file, opts)
	}
	imports := make([]map[string]any, 0, len(fileImports))
	for _, imp := range fileImports {
		imports = append(imports, map[string]any{
			"name": imp.Name,
			"path": imp.Path,
		})
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteWriter(pongo2.Context{
		"header":  header,
		"package": file.Package,
		"source":  file.Source,
		"imports": imports,
		"records": records,
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("gosource: execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gosource: format output: %w", err)
	}
	return formatted, nil
}

// inferWrapperImport is the fallback for callers constructing a render.File
// by hand: the wrapper qualifier is the only import that can be recovered
// from the field types without the source file's import table.
func inferWrapperImport(file render.File, opts render.Options) []render.Import {
	wrapperImport := opts.WrapperImport
	if wrapperImport == "" {
		wrapperImport = schema.DefaultWrapperImport
	}
	for _, record := range file.Records {
		for _, field := range record.Fields {
			if field.Type.Uses(schema.WrapperQualifier) {
				return []render.Import{{Path: wrapperImport}}
			}
		}
	}
	return nil
}

// RenderDecl renders a single self-contained type declaration for the
// supplied record. It is the per-record rendering primitive; the full file
// renderer wraps the same shape with a package clause and imports.
func RenderDecl(record schema.Record) ([]byte, error) {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(record.Name)
	b.WriteString(" struct {\n")
	for _, field := range record.Fields {
		b.WriteString("\t")
		b.WriteString(field.Name)
		b.WriteString(" ")
		b.WriteString(field.Type.String())
		if field.Tag != "" {
			b.WriteString(" ")
			b.WriteString(field.Tag)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("gosource: format declaration: %w", err)
	}
	return formatted, nil
}
