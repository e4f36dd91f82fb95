// Package goparser extracts record schemas from Go source declarations.
package goparser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-optionalize/pkg/schema"
)

// DeriveMarker is the comment directive that selects a struct for generation
// when no explicit type list is supplied.
const DeriveMarker = "//optionalize:derive"

// File is the parse result for a single Go source file. Imports maps each
// package qualifier usable in the file to its import path; dot and blank
// imports are omitted because field type expressions cannot reference them
// by qualifier.
type File struct {
	Package string
	Name    string
	Decls   []Decl
	Imports map[string]string

	fset *token.FileSet
	src  []byte
}

// Decl is one type declaration found in a source file.
type Decl struct {
	Name   string
	Pos    schema.SourcePos
	Marked bool

	file  *File
	spec  *ast.TypeSpec
	alias bool
}

// Parse reads a Go source file and collects its type declarations. It does
// not classify them; call Decl.Record to convert a declaration into a schema.
func Parse(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("goparser: parse %s: %w", filename, err)
	}

	out := &File{
		Package: parsed.Name.Name,
		Name:    filename,
		Imports: make(map[string]string),
		fset:    fset,
		src:     src,
	}

	for _, imp := range parsed.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		qualifier := Qualifier(path)
		if imp.Name != nil {
			qualifier = imp.Name.Name
		}
		if qualifier == "_" || qualifier == "." {
			continue
		}
		out.Imports[qualifier] = path
	}

	for _, decl := range parsed.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			out.Decls = append(out.Decls, Decl{
				Name:   typeSpec.Name.Name,
				Pos:    position(fset, typeSpec.Pos()),
				Marked: hasMarker(gen.Doc) || hasMarker(typeSpec.Doc),
				file:   out,
				spec:   typeSpec,
				alias:  typeSpec.Assign.IsValid(),
			})
		}
	}

	return out, nil
}

// ParseType parses source holding exactly one bare type declaration, the
// single-declaration entry point used by library callers. The declaration is
// wrapped in a synthetic package clause before parsing; reported positions
// are adjusted back to the input's own line numbering.
func ParseType(src string) (schema.Record, error) {
	wrapped := "package input\n" + src
	file, err := Parse("<input>", []byte(wrapped))
	if err != nil {
		return schema.Record{}, err
	}
	if len(file.Decls) != 1 {
		return schema.Record{}, fmt.Errorf("goparser: expected exactly one type declaration, found %d", len(file.Decls))
	}

	decl := file.Decls[0]
	decl.Pos.Line--
	record, err := decl.Record()
	if err != nil {
		return schema.Record{}, err
	}
	return record, nil
}

// Decl retrieves a declaration by type name.
func (f *File) Decl(name string) (Decl, bool) {
	for _, decl := range f.Decls {
		if decl.Name == name {
			return decl, true
		}
	}
	return Decl{}, false
}

// Marked returns the declarations carrying the derive marker, in source order.
func (f *File) Marked() []Decl {
	var out []Decl
	for _, decl := range f.Decls {
		if decl.Marked {
			out = append(out, decl)
		}
	}
	return out
}

// Record converts the declaration into a schema.Record. Declarations that are
// not plain struct types fail with *schema.NotARecordError: named non-struct
// types, aliases, interfaces, function types, and type-parameterized structs.
// Field type expressions are preserved exactly as written; grouped names
// expand in declared order, embedded fields take their type name, and struct
// tags are carried verbatim.
func (d Decl) Record() (schema.Record, error) {
	structType, ok := d.spec.Type.(*ast.StructType)
	if !ok || d.alias || d.spec.TypeParams != nil {
		return schema.Record{}, &schema.NotARecordError{TypeName: d.Name, Pos: d.Pos}
	}

	var fields []schema.Field
	if structType.Fields != nil {
		for _, field := range structType.Fields.List {
			expr := schema.NewTypeExpr(d.file.exprText(field.Type))
			tag := ""
			if field.Tag != nil {
				tag = field.Tag.Value
			}
			if len(field.Names) == 0 {
				name := embeddedName(field.Type)
				if name == "" {
					continue
				}
				fields = append(fields, schema.Field{Name: name, Type: expr, Tag: tag})
				continue
			}
			for _, ident := range field.Names {
				fields = append(fields, schema.Field{Name: ident.Name, Type: expr, Tag: tag})
			}
		}
	}

	record, err := schema.NewRecord(d.Name, fields)
	if err != nil {
		return schema.Record{}, fmt.Errorf("goparser: %s: %w", d.Pos, err)
	}
	return record, nil
}

// Qualifier derives the default package qualifier for an import path: the
// last path segment, skipping a major-version suffix such as /v2. Import
// aliases in the source override this.
func Qualifier(path string) string {
	base := path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if len(base) > 1 && base[0] == 'v' {
		if _, err := strconv.Atoi(base[1:]); err == nil {
			if idx := strings.LastIndex(path, "/"); idx >= 0 {
				return Qualifier(path[:idx])
			}
		}
	}
	return base
}

// exprText slices the original source for the expression so no formatting or
// normalization is applied.
func (f *File) exprText(expr ast.Expr) string {
	start := f.fset.Position(expr.Pos()).Offset
	end := f.fset.Position(expr.End()).Offset
	if start < 0 || end > len(f.src) || start >= end {
		return ""
	}
	return string(f.src[start:end])
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, comment := range doc.List {
		if strings.HasPrefix(strings.TrimSpace(comment.Text), DeriveMarker) {
			return true
		}
	}
	return false
}

func position(fset *token.FileSet, pos token.Pos) schema.SourcePos {
	p := fset.Position(pos)
	return schema.SourcePos{File: p.Filename, Line: p.Line, Column: p.Column}
}
