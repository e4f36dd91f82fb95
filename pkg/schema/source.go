package schema

import "path/filepath"

// Source identifies where an input declaration originated so the generator
// can read files, fs.FS entries, or in-memory buffers without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindInline SourceKind = "inline"
)

// fileSource identifies an on-disk source file.
type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

func (s fileSource) Location() string {
	return s.path
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS supplied to the generator.
type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

func (s fsSource) Location() string {
	return s.name
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// inlineSource carries the payload directly, used by library callers and
// tests that already hold the declaration in memory.
type inlineSource struct {
	name string
	raw  []byte
}

func (s inlineSource) Kind() SourceKind {
	return SourceKindInline
}

func (s inlineSource) Location() string {
	return s.name
}

// Raw returns a defensive copy of the payload.
func (s inlineSource) Raw() []byte {
	return append([]byte(nil), s.raw...)
}

// SourceFromBytes returns a Source wrapping an in-memory payload. The name is
// used for diagnostics only.
func SourceFromBytes(name string, raw []byte) Source {
	return inlineSource{name: name, raw: append([]byte(nil), raw...)}
}

// RawProvider is satisfied by sources that carry their payload inline.
type RawProvider interface {
	Raw() []byte
}
