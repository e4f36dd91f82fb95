package schema

import (
	"errors"
	"fmt"
)

// SourcePos anchors a diagnostic at a declaration in its source file.
type SourcePos struct {
	File   string
	Line   int
	Column int
}

// String renders the position in the compiler's file:line:column form,
// omitting trailing zero components.
func (p SourcePos) String() string {
	switch {
	case p.File == "" && p.Line == 0:
		return ""
	case p.Line == 0:
		return p.File
	case p.Column == 0:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// NotARecordError reports that a declaration handed to the parser is not a
// field-bearing struct type. It is the pipeline's only failure mode: once a
// record parses, projection and rendering are total.
type NotARecordError struct {
	TypeName string
	Pos      SourcePos
}

func (e *NotARecordError) Error() string {
	if e.TypeName == "" {
		return "schema: declaration is not a struct type"
	}
	return fmt.Sprintf("schema: %s is not a struct type", e.TypeName)
}

// Diagnostic renders the error as a compiler-style diagnostic line suitable
// for surfacing as a build failure.
func (e *NotARecordError) Diagnostic() string {
	msg := fmt.Sprintf("optionalize: %s is not a struct type; only struct types can be optionalized", e.TypeName)
	if pos := e.Pos.String(); pos != "" {
		return pos + ": " + msg
	}
	return msg
}

// AsNotARecord unwraps err into a NotARecordError when it carries one.
func AsNotARecord(err error) (*NotARecordError, bool) {
	var target *NotARecordError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
