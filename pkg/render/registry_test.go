package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubRenderer struct {
	name string
}

func (r *stubRenderer) Name() string        { return r.name }
func (r *stubRenderer) ContentType() string { return "text/plain" }
func (r *stubRenderer) Render(context.Context, File, Options) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	renderer := &stubRenderer{name: "gosource"}

	if err := registry.Register(renderer); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !registry.Has("gosource") {
		t.Fatalf("Has(gosource) = false, want true")
	}

	got, err := registry.Get("gosource")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != renderer {
		t.Fatalf("Get returned a different renderer")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(&stubRenderer{name: "gosource"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(&stubRenderer{name: "gosource"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistryRejectsInvalidRenderers(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(&stubRenderer{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestRegistryListSorted(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.MustRegister(&stubRenderer{name: "zeta"})
	registry.MustRegister(&stubRenderer{name: "alpha"})
	registry.MustRegister(&stubRenderer{name: "mid"})

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, registry.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}
