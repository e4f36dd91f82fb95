package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeExprIsOptional(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		src      string
		optional bool
	}{
		{name: "bare wrapper", src: "Optional[int]", optional: true},
		{name: "qualified wrapper", src: "optional.Optional[string]", optional: true},
		{name: "other qualifier", src: "opt.Optional[string]", optional: true},
		{name: "nested inner", src: "Optional[map[string]int]", optional: true},
		{name: "plain ident", src: "int", optional: false},
		{name: "pointer", src: "*string", optional: false},
		{name: "slice of wrapper", src: "[]Optional[int]", optional: false},
		{name: "different generic", src: "List[int]", optional: false},
		{name: "alias of wrapper is not detected", src: "Maybe[int]", optional: false},
		{name: "similar name", src: "Option[int]", optional: false},
		{name: "qualified similar name", src: "optional.Option[int]", optional: false},
		{name: "unparseable", src: "???", optional: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			expr := NewTypeExpr(tc.src)
			if got := expr.IsOptional(); got != tc.optional {
				t.Fatalf("IsOptional(%q) = %v, want %v", tc.src, got, tc.optional)
			}
		})
	}
}

func TestTypeExprWrap(t *testing.T) {
	t.Parallel()

	t.Run("wraps plain type once", func(t *testing.T) {
		t.Parallel()
		wrapped := NewTypeExpr("int").Wrap()
		if got, want := wrapped.String(), "optional.Optional[int]"; got != want {
			t.Fatalf("Wrap() = %q, want %q", got, want)
		}
		if !wrapped.IsOptional() {
			t.Fatalf("wrapped expression should classify as optional")
		}
	})

	t.Run("already optional passes through", func(t *testing.T) {
		t.Parallel()
		expr := NewTypeExpr("Optional[string]")
		if got := expr.Wrap(); !got.Equal(expr) {
			t.Fatalf("Wrap() = %q, want unchanged %q", got, expr)
		}
	})

	t.Run("wrapping is idempotent", func(t *testing.T) {
		t.Parallel()
		once := NewTypeExpr("[]byte").Wrap()
		twice := once.Wrap()
		if !twice.Equal(once) {
			t.Fatalf("second Wrap() = %q, want %q", twice, once)
		}
	})
}

func TestTypeExprUses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src       string
		qualifier string
		want      bool
	}{
		{src: "optional.Optional[int]", qualifier: "optional", want: true},
		{src: "map[string]optional.Optional[int]", qualifier: "optional", want: true},
		{src: "Optional[int]", qualifier: "optional", want: false},
		{src: "time.Time", qualifier: "optional", want: false},
		{src: "optionalish.Thing", qualifier: "optional", want: false},
	}

	for _, tc := range cases {
		if got := NewTypeExpr(tc.src).Uses(tc.qualifier); got != tc.want {
			t.Fatalf("Uses(%q, %q) = %v, want %v", tc.src, tc.qualifier, got, tc.want)
		}
	}
}

func TestTypeExprQualifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		want []string
	}{
		{src: "int", want: nil},
		{src: "time.Time", want: []string{"time"}},
		{src: "optional.Optional[time.Time]", want: []string{"optional", "time"}},
		{src: "map[pkg.Key]optional.Optional[pkg.Value]", want: []string{"pkg", "optional"}},
		{src: "[]*durpb.Duration", want: []string{"durpb"}},
		{src: "not a type", want: nil},
	}

	for _, tc := range cases {
		got := NewTypeExpr(tc.src).Qualifiers()
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Qualifiers(%q) mismatch (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate field names", func(t *testing.T) {
		t.Parallel()
		_, err := NewRecord("Item", []Field{
			{Name: "id", Type: NewTypeExpr("int")},
			{Name: "id", Type: NewTypeExpr("string")},
		})
		if err == nil {
			t.Fatalf("expected duplicate field error")
		}
		if !strings.Contains(err.Error(), "duplicate field") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("allows repeated blank fields", func(t *testing.T) {
		t.Parallel()
		record, err := NewRecord("Padded", []Field{
			{Name: "_", Type: NewTypeExpr("[4]byte")},
			{Name: "_", Type: NewTypeExpr("[8]byte")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(record.Fields) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(record.Fields))
		}
	})

	t.Run("allows zero fields", func(t *testing.T) {
		t.Parallel()
		record, err := NewRecord("Empty", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(record.Fields) != 0 {
			t.Fatalf("expected no fields, got %d", len(record.Fields))
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()
		if _, err := NewRecord("  ", nil); err == nil {
			t.Fatalf("expected error for blank name")
		}
	})
}

func TestRecordFieldNames(t *testing.T) {
	t.Parallel()

	record := MustNewRecord("Item", []Field{
		{Name: "id", Type: NewTypeExpr("int")},
		{Name: "label", Type: NewTypeExpr("string")},
		{Name: "note", Type: NewTypeExpr("Optional[string]")},
	})

	got := record.FieldNames()
	want := []string{"id", "label", "note"}
	if len(got) != len(want) {
		t.Fatalf("FieldNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FieldNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
