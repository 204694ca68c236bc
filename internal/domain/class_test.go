package domain

import "testing"

func TestClassAncestry(t *testing.T) {
	b := NewClass("B", nil)
	h := NewClass("H", b)
	l := NewClass("L", h)

	chain := l.Ancestry()
	if len(chain) != 3 {
		t.Fatalf("expected 3 classes in ancestry, got %d", len(chain))
	}
	if chain[0] != l || chain[1] != h || chain[2] != b {
		t.Fatalf("expected most derived first, got %v", chain)
	}
}

func TestClassIdentityIsPointer(t *testing.T) {
	a := NewClass("Same", nil)
	b := NewClass("Same", nil)
	if a == b {
		t.Fatalf("expected distinct classes for separate declarations")
	}
}

func TestDeclarationBaseType(t *testing.T) {
	d := Declaration{Field: "amount"}
	if got := d.BaseType(DefaultScalar); got != "String" {
		t.Fatalf("expected default scalar, got %s", got)
	}

	d.ReturnType = func() string { return "Int" }
	if got := d.BaseType(DefaultScalar); got != "Int" {
		t.Fatalf("expected declared type, got %s", got)
	}
}
