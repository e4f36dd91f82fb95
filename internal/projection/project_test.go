package projection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-optionalize/pkg/schema"
)

func TestProjectWrapsNonOptionalFields(t *testing.T) {
	t.Parallel()

	input := schema.MustNewRecord("Item", []schema.Field{
		{Name: "id", Type: schema.NewTypeExpr("int")},
		{Name: "label", Type: schema.NewTypeExpr("string")},
		{Name: "note", Type: schema.NewTypeExpr("Optional[string]")},
	})

	got := Project(input)

	want := schema.MustNewRecord("ItemOptional", []schema.Field{
		{Name: "id", Type: schema.NewTypeExpr("optional.Optional[int]")},
		{Name: "label", Type: schema.NewTypeExpr("optional.Optional[string]")},
		{Name: "note", Type: schema.NewTypeExpr("Optional[string]")},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectPreservesCountNamesAndOrder(t *testing.T) {
	t.Parallel()

	input := schema.MustNewRecord("Wide", []schema.Field{
		{Name: "a", Type: schema.NewTypeExpr("int")},
		{Name: "b", Type: schema.NewTypeExpr("[]byte")},
		{Name: "c", Type: schema.NewTypeExpr("map[string]bool")},
		{Name: "d", Type: schema.NewTypeExpr("optional.Optional[string]")},
		{Name: "e", Type: schema.NewTypeExpr("*Thing")},
	})

	got := Project(input)
	if len(got.Fields) != len(input.Fields) {
		t.Fatalf("field count = %d, want %d", len(got.Fields), len(input.Fields))
	}
	if diff := cmp.Diff(input.FieldNames(), got.FieldNames()); diff != "" {
		t.Fatalf("field names/order mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectNameDerivation(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Item", "X", "AlreadyOptional"} {
		got := Project(schema.MustNewRecord(name, nil))
		if want := name + "Optional"; got.Name != want {
			t.Fatalf("Project(%s).Name = %q, want %q", name, got.Name, want)
		}
	}
}

func TestProjectEmptyRecord(t *testing.T) {
	t.Parallel()

	got := Project(schema.MustNewRecord("Empty", nil))
	if got.Name != "EmptyOptional" {
		t.Fatalf("Name = %q, want EmptyOptional", got.Name)
	}
	if len(got.Fields) != 0 {
		t.Fatalf("expected zero fields, got %d", len(got.Fields))
	}
}

func TestProjectPreservesTags(t *testing.T) {
	t.Parallel()

	input := schema.MustNewRecord("Tagged", []schema.Field{
		{Name: "ID", Type: schema.NewTypeExpr("int64"), Tag: "`json:\"id\" db:\"id\"`"},
	})

	got := Project(input)
	if got.Fields[0].Tag != input.Fields[0].Tag {
		t.Fatalf("Tag = %q, want %q", got.Fields[0].Tag, input.Fields[0].Tag)
	}
}

func TestProjectIsIdempotentAtFieldLevel(t *testing.T) {
	t.Parallel()

	input := schema.MustNewRecord("Item", []schema.Field{
		{Name: "id", Type: schema.NewTypeExpr("int")},
		{Name: "note", Type: schema.NewTypeExpr("Optional[string]")},
	})

	once := Project(input)
	twice := Project(once)

	if twice.Name != "ItemOptionalOptional" {
		t.Fatalf("Name = %q, want ItemOptionalOptional", twice.Name)
	}
	if diff := cmp.Diff(once.Fields, twice.Fields); diff != "" {
		t.Fatalf("re-projection must not change field typing (-want +got):\n%s", diff)
	}
}

// An alias of the wrapper is not recognized and gets wrapped again. This is
// the documented one-name-match limitation, preserved deliberately.
func TestProjectDoubleWrapsUnrecognizedAlias(t *testing.T) {
	t.Parallel()

	input := schema.MustNewRecord("Aliased", []schema.Field{
		{Name: "note", Type: schema.NewTypeExpr("Maybe[string]")},
	})

	got := Project(input)
	if want := "optional.Optional[Maybe[string]]"; got.Fields[0].Type.String() != want {
		t.Fatalf("Type = %q, want %q", got.Fields[0].Type, want)
	}
}

func TestProjectAll(t *testing.T) {
	t.Parallel()

	records := []schema.Record{
		schema.MustNewRecord("A", nil),
		schema.MustNewRecord("B", nil),
	}
	got := ProjectAll(records)
	if len(got) != 2 || got[0].Name != "AOptional" || got[1].Name != "BOptional" {
		t.Fatalf("ProjectAll = %+v", got)
	}
	if ProjectAll(nil) != nil {
		t.Fatalf("ProjectAll(nil) should be nil")
	}
}
