package animator

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	payload := []byte(`{"functions":{},"globals":{},"operations":[{"op":"end"}]}`)
	if err := store.Save("rainbow", KindFlow, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}

	kind, got, err := store.Load("rainbow")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if kind != KindFlow {
		t.Errorf("kind = %v, want %v", kind, KindFlow)
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadUnknownType(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("bad", Kind(9), []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, _, err = store.Load("bad")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load error = %v, want *LoadError", err)
	}
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Remove("never-existed"); err != nil {
		t.Fatalf("Remove of missing file: %v", err)
	}

	if err := store.Save("temp", KindWasm, []byte{0x00, 0x61}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove("temp"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove("temp"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}
