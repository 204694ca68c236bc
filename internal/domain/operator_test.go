package domain

import "testing"

func TestOpsKeepsFirstOccurrence(t *testing.T) {
	set := Ops(FilterOperatorLt, FilterOperatorGt, FilterOperatorLt)

	got := set.Operators()
	if len(got) != 2 {
		t.Fatalf("expected 2 operators, got %v", got)
	}
	if got[0] != FilterOperatorLt || got[1] != FilterOperatorGt {
		t.Fatalf("expected declaration order to be kept, got %v", got)
	}
}

func TestOpsSingleTag(t *testing.T) {
	set := Ops(FilterOperatorEq)
	if set.Len() != 1 || !set.Contains(FilterOperatorEq) {
		t.Fatalf("expected single tag to normalize to one element set, got %v", set.Operators())
	}
}

func TestFilterOperatorReturnsArray(t *testing.T) {
	for _, op := range AllFilterOperators {
		want := op == FilterOperatorIn || op == FilterOperatorLikeAny
		if op.ReturnsArray() != want {
			t.Errorf("operator %s: expected ReturnsArray=%v", op, want)
		}
	}
}

func TestParseFilterOperator(t *testing.T) {
	if op, ok := ParseFilterOperator("likeAny"); !ok || op != FilterOperatorLikeAny {
		t.Fatalf("expected likeAny to parse, got %q %v", op, ok)
	}
	if _, ok := ParseFilterOperator("between"); ok {
		t.Fatalf("expected unknown tag to be rejected")
	}
}

func TestBaseOperators(t *testing.T) {
	if ops := BaseOperators(false); len(ops) != 2 {
		t.Fatalf("expected or/and only, got %v", ops)
	}
	ops := BaseOperators(true)
	if len(ops) != 3 || ops[2] != BaseOperatorNot {
		t.Fatalf("expected not to be appended, got %v", ops)
	}
	if BaseOperatorOr.EnumValue() != "OR" {
		t.Fatalf("unexpected enum value %s", BaseOperatorOr.EnumValue())
	}
}
