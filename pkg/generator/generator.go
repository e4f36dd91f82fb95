// Package generator coordinates the full pipeline from source declaration to
// rendered companion types. It applies sensible defaults (gosource renderer,
// embedded templates) while remaining open to dependency injection.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-optionalize/internal/goparser"
	"github.com/goliatone/go-optionalize/internal/openapi"
	"github.com/goliatone/go-optionalize/internal/projection"
	"github.com/goliatone/go-optionalize/pkg/render"
	"github.com/goliatone/go-optionalize/pkg/renderers/gosource"
	"github.com/goliatone/go-optionalize/pkg/schema"
)

// Request describes one generation pass over a Go source input.
type Request struct {
	// Source supplies the declarations to optionalize.
	Source schema.Source
	// Types requests specific type names. When empty, structs carrying the
	// derive marker are selected instead.
	Types []string
	// Renderer names the output renderer; empty uses the default.
	Renderer string
	// Package overrides the output package name, which otherwise follows the
	// input file's package clause.
	Package string
}

// OpenAPIRequest describes one generation pass over an OpenAPI 3 document.
type OpenAPIRequest struct {
	Source schema.Source
	// Schemas names the object schema components to optionalize.
	Schemas []string
	// Package is required: documents carry no package clause of their own.
	Package  string
	Renderer string
}

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		g.defaultRenderer = name
	}
}

// WithFS supplies the filesystem consulted for fs-kind sources.
func WithFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.fsys = fsys
	}
}

// WithRenderOptions sets renderer options applied to every request.
func WithRenderOptions(opts render.Options) Option {
	return func(g *Generator) {
		g.renderOpts = opts
	}
}

// Generator runs parse, project, and render over one input per invocation.
// Invocations share no state and may run concurrently.
type Generator struct {
	registry        *render.Registry
	defaultRenderer string
	fsys            fs.FS
	renderOpts      render.Options
}

// New constructs a Generator applying any provided options. A missing
// registry is initialised with the built-in gosource renderer so callers can
// start with a single constructor call.
func New(options ...Option) *Generator {
	g := &Generator{defaultRenderer: gosource.Name}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.registry == nil {
		g.registry = render.NewRegistry()
	}
	if !g.registry.Has(gosource.Name) {
		g.registry.MustRegister(gosource.New())
	}
	return g
}

// Generate runs the pipeline over a Go source input and returns the rendered
// companion file. A requested type that is not a struct aborts this
// invocation with the schema diagnostic; other invocations are unaffected.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if req.Source == nil {
		return nil, errors.New("generator: source is required")
	}
	raw, err := g.load(req.Source)
	if err != nil {
		return nil, err
	}

	file, err := goparser.Parse(req.Source.Location(), raw)
	if err != nil {
		return nil, err
	}

	decls, err := selectDecls(file, req.Types)
	if err != nil {
		return nil, err
	}

	records := make([]schema.Record, 0, len(decls))
	for _, decl := range decls {
		record, err := decl.Record()
		if err != nil {
			return nil, fmt.Errorf("generator: %s: %w", file.Name, err)
		}
		records = append(records, record)
	}

	pkgName := req.Package
	if pkgName == "" {
		pkgName = file.Package
	}
	projected := projection.ProjectAll(records)
	return g.render(ctx, req.Renderer, render.File{
		Package: pkgName,
		Source:  file.Name,
		Imports: g.resolveImports(projected, file.Imports),
		Records: projected,
	})
}

// GenerateOpenAPI runs the pipeline over an OpenAPI 3 document.
func (g *Generator) GenerateOpenAPI(ctx context.Context, req OpenAPIRequest) ([]byte, error) {
	if req.Source == nil {
		return nil, errors.New("generator: source is required")
	}
	if strings.TrimSpace(req.Package) == "" {
		return nil, errors.New("generator: package name is required for OpenAPI sources")
	}
	raw, err := g.load(req.Source)
	if err != nil {
		return nil, err
	}

	records, err := openapi.Records(ctx, raw, req.Schemas)
	if err != nil {
		return nil, err
	}

	projected := projection.ProjectAll(records)
	return g.render(ctx, req.Renderer, render.File{
		Package: req.Package,
		Source:  req.Source.Location(),
		Imports: g.resolveImports(projected, nil),
		Records: projected,
	})
}

// Structs lists the struct type names found in a Go source input, in source
// order. Interactive callers use this to offer a selection.
func (g *Generator) Structs(req Request) ([]string, error) {
	if req.Source == nil {
		return nil, errors.New("generator: source is required")
	}
	raw, err := g.load(req.Source)
	if err != nil {
		return nil, err
	}
	file, err := goparser.Parse(req.Source.Location(), raw)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, decl := range file.Decls {
		if _, err := decl.Record(); err != nil {
			continue
		}
		names = append(names, decl.Name)
	}
	return names, nil
}

func selectDecls(file *goparser.File, types []string) ([]goparser.Decl, error) {
	if len(types) > 0 {
		decls := make([]goparser.Decl, 0, len(types))
		for _, name := range types {
			decl, ok := file.Decl(name)
			if !ok {
				return nil, fmt.Errorf("generator: type %q not found in %s", name, file.Name)
			}
			decls = append(decls, decl)
		}
		return decls, nil
	}

	decls := file.Marked()
	if len(decls) == 0 {
		return nil, fmt.Errorf("generator: no types selected in %s; mark structs with %s or request them explicitly", file.Name, goparser.DeriveMarker)
	}
	return decls, nil
}

// resolveImports maps the package qualifiers referenced by the projected
// field types back to import paths via the source file's import table, so
// generated output imports everything its declarations mention. The wrapper
// qualifier resolves to the configured wrapper path unless the source already
// binds it; qualifiers outside the table name same-package types and need no
// import.
func (g *Generator) resolveImports(records []schema.Record, table map[string]string) []render.Import {
	wrapperImport := g.renderOpts.WrapperImport
	if wrapperImport == "" {
		wrapperImport = schema.DefaultWrapperImport
	}

	resolved := make(map[string]render.Import)
	for _, record := range records {
		for _, field := range record.Fields {
			for _, qualifier := range field.Type.Qualifiers() {
				if _, done := resolved[qualifier]; done {
					continue
				}
				if path, ok := table[qualifier]; ok {
					imp := render.Import{Path: path}
					if goparser.Qualifier(path) != qualifier {
						imp.Name = qualifier
					}
					resolved[qualifier] = imp
					continue
				}
				if qualifier == schema.WrapperQualifier {
					resolved[qualifier] = render.Import{Path: wrapperImport}
				}
			}
		}
	}

	if len(resolved) == 0 {
		return nil
	}
	out := make([]render.Import, 0, len(resolved))
	for _, imp := range resolved {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (g *Generator) render(ctx context.Context, name string, file render.File) ([]byte, error) {
	if name == "" {
		name = g.defaultRenderer
	}
	renderer, err := g.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, file, g.renderOpts)
}

func (g *Generator) load(src schema.Source) ([]byte, error) {
	switch src.Kind() {
	case schema.SourceKindFile:
		raw, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("generator: read %s: %w", src.Location(), err)
		}
		return raw, nil
	case schema.SourceKindFS:
		if g.fsys == nil {
			return nil, fmt.Errorf("generator: fs source %q requires WithFS", src.Location())
		}
		raw, err := fs.ReadFile(g.fsys, src.Location())
		if err != nil {
			return nil, fmt.Errorf("generator: read %s: %w", src.Location(), err)
		}
		return raw, nil
	case schema.SourceKindInline:
		provider, ok := src.(schema.RawProvider)
		if !ok {
			return nil, fmt.Errorf("generator: inline source %q carries no payload", src.Location())
		}
		return provider.Raw(), nil
	default:
		return nil, fmt.Errorf("generator: unsupported source kind %q", src.Kind())
	}
}
