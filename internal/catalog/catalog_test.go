package catalog

import "testing"

func TestSwatches_OrderAndCopy(t *testing.T) {
	got := Swatches()
	want := []string{"Green", "Violet", "Yellow", "Pink", "Orange", "Blue"}
	if len(got) != len(want) {
		t.Fatalf("len(Swatches()) = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("Swatches()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}

	got[0].Name = "mutated"
	if Swatches()[0].Name != "Green" {
		t.Fatalf("Swatches should return a copy")
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("  pink ")
	if !ok || s.Hex != "#FE9EC4" {
		t.Fatalf("Lookup(pink) = %#v, %v; want Pink", s, ok)
	}
	if _, ok := Lookup("Teal"); ok {
		t.Fatalf("Lookup(Teal) ok = true, want false")
	}
}

func TestByHex(t *testing.T) {
	s, ok := ByHex("#4460ee")
	if !ok || s.Name != "Blue" {
		t.Fatalf("ByHex(#4460ee) = %#v, %v; want Blue", s, ok)
	}
	if _, ok := ByHex("#000000"); ok {
		t.Fatalf("ByHex(#000000) ok = true, want false")
	}
}

func TestDefaultSelectionExists(t *testing.T) {
	if _, ok := Lookup(DefaultSelection); !ok {
		t.Fatalf("DefaultSelection %q missing from catalog", DefaultSelection)
	}
}
