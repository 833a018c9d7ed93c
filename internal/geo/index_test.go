package geo

import (
	"testing"

	"trip-route-service/internal/domain"
)

func TestIndexLookupStaticTable(t *testing.T) {
	x := NewIndex()

	c, ok := x.Lookup("Marrakech")
	if !ok {
		t.Fatal("expected static hit for Marrakech")
	}
	if c.Lat == 0 && c.Lon == 0 {
		t.Fatal("expected non-zero coordinates")
	}

	// Normalization: case and extra whitespace do not matter.
	c2, ok := x.Lookup("  marrakech ")
	if !ok || c2 != c {
		t.Fatalf("normalized lookup mismatch: %v vs %v", c2, c)
	}
}

func TestIndexRegistryWinsOverStatic(t *testing.T) {
	x := NewIndex()
	custom := domain.Coordinates{Lat: 1, Lon: 2}
	x.Register("Marrakech", custom)

	c, ok := x.Lookup("marrakech")
	if !ok || c != custom {
		t.Fatalf("expected registry override, got %v", c)
	}

	x.Clear()
	c, ok = x.Lookup("marrakech")
	if !ok || c == custom {
		t.Fatal("expected static entry back after Clear")
	}
}

func TestIndexSubstringFallback(t *testing.T) {
	x := NewIndex()

	// "fes medina" is not a known key but contains one.
	c, ok := x.Lookup("Fes Medina")
	if !ok {
		t.Fatal("expected substring fallback hit")
	}
	want, _ := x.Lookup("fes")
	if c != want {
		t.Fatalf("fallback = %v, want coordinates of fes", c)
	}
}

func TestIndexUnknownCity(t *testing.T) {
	x := NewIndex()
	if _, ok := x.Lookup("zzz"); ok {
		t.Fatal("expected miss for unknown city")
	}
	if _, ok := x.Lookup("   "); ok {
		t.Fatal("expected miss for blank city")
	}
}

func TestIndexRegisteredSnapshot(t *testing.T) {
	x := NewIndex()
	x.Register("Somewhere New", domain.Coordinates{Lat: 5, Lon: 6})

	snap := x.Registered()
	if len(snap) != 1 {
		t.Fatalf("expected 1 registered entry, got %d", len(snap))
	}
	if _, ok := snap["somewhere new"]; !ok {
		t.Fatalf("expected normalized key, got %v", snap)
	}

	// Mutating the snapshot must not affect the index.
	delete(snap, "somewhere new")
	if _, ok := x.Lookup("somewhere new"); !ok {
		t.Fatal("snapshot mutation leaked into the index")
	}
}
