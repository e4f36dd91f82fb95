package schema

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotARecordErrorDiagnostic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  *NotARecordError
		want string
	}{
		{
			name: "full position",
			err: &NotARecordError{
				TypeName: "Color",
				Pos:      SourcePos{File: "models.go", Line: 12, Column: 6},
			},
			want: "models.go:12:6: optionalize: Color is not a struct type; only struct types can be optionalized",
		},
		{
			name: "file only",
			err: &NotARecordError{
				TypeName: "Color",
				Pos:      SourcePos{File: "models.go"},
			},
			want: "models.go: optionalize: Color is not a struct type; only struct types can be optionalized",
		},
		{
			name: "no position",
			err:  &NotARecordError{TypeName: "Color"},
			want: "optionalize: Color is not a struct type; only struct types can be optionalized",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Diagnostic(); got != tc.want {
				t.Fatalf("Diagnostic() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAsNotARecord(t *testing.T) {
	t.Parallel()

	base := &NotARecordError{TypeName: "Status"}
	wrapped := fmt.Errorf("generate models.go: %w", base)

	got, ok := AsNotARecord(wrapped)
	if !ok {
		t.Fatalf("expected wrapped error to unwrap")
	}
	if got.TypeName != "Status" {
		t.Fatalf("TypeName = %q, want %q", got.TypeName, "Status")
	}

	if _, ok := AsNotARecord(errors.New("other")); ok {
		t.Fatalf("unrelated error should not unwrap")
	}
}
