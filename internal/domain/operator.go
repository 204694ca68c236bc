package domain

import "strings"

// FilterOperator represents a comparison a filterable field supports. The
// value doubles as the suffix of the synthesized input field.
type FilterOperator string

const (
	FilterOperatorLt      FilterOperator = "lt"
	FilterOperatorGt      FilterOperator = "gt"
	FilterOperatorLte     FilterOperator = "lte"
	FilterOperatorGte     FilterOperator = "gte"
	FilterOperatorEq      FilterOperator = "eq"
	FilterOperatorNe      FilterOperator = "ne"
	FilterOperatorIn      FilterOperator = "in"
	FilterOperatorLike    FilterOperator = "like"
	FilterOperatorLikeAny FilterOperator = "likeAny"
	FilterOperatorExist   FilterOperator = "exist"
)

// AllFilterOperators lists every known operator in canonical order.
var AllFilterOperators = []FilterOperator{
	FilterOperatorLt,
	FilterOperatorGt,
	FilterOperatorLte,
	FilterOperatorGte,
	FilterOperatorEq,
	FilterOperatorNe,
	FilterOperatorIn,
	FilterOperatorLike,
	FilterOperatorLikeAny,
	FilterOperatorExist,
}

var arrayReturnTypeOperators = map[FilterOperator]struct{}{
	FilterOperatorIn:      {},
	FilterOperatorLikeAny: {},
}

// IsValid reports whether the operator belongs to the known set.
func (o FilterOperator) IsValid() bool {
	for _, op := range AllFilterOperators {
		if op == o {
			return true
		}
	}
	return false
}

// ReturnsArray reports whether fields for this operator take a list of the
// declared type instead of a single value.
func (o FilterOperator) ReturnsArray() bool {
	_, ok := arrayReturnTypeOperators[o]
	return ok
}

// ParseFilterOperator maps a tag such as "likeAny" to its operator.
func ParseFilterOperator(tag string) (FilterOperator, bool) {
	op := FilterOperator(strings.TrimSpace(tag))
	return op, op.IsValid()
}

// BaseOperator combines sibling conditions of a filter.
type BaseOperator string

const (
	BaseOperatorOr  BaseOperator = "or"
	BaseOperatorAnd BaseOperator = "and"
	BaseOperatorNot BaseOperator = "not"
)

// BaseOperatorTypeName is the schema name of the combinator enum.
const BaseOperatorTypeName = "BaseOperator"

// BaseOperators returns the combinators exposed by the enum. Negation is
// only part of the enum when requested.
func BaseOperators(withNot bool) []BaseOperator {
	ops := []BaseOperator{BaseOperatorOr, BaseOperatorAnd}
	if withNot {
		ops = append(ops, BaseOperatorNot)
	}
	return ops
}

// EnumValue returns the schema enum value name, e.g. "OR".
func (o BaseOperator) EnumValue() string {
	return strings.ToUpper(string(o))
}

// OperatorSet is an ordered, duplicate free collection of operators.
type OperatorSet struct {
	ops []FilterOperator
}

// Ops builds an OperatorSet keeping the first occurrence of each operator.
// A single tag yields a one element set.
func Ops(ops ...FilterOperator) OperatorSet {
	set := OperatorSet{}
	seen := make(map[FilterOperator]struct{}, len(ops))
	for _, op := range ops {
		if _, dup := seen[op]; dup {
			continue
		}
		seen[op] = struct{}{}
		set.ops = append(set.ops, op)
	}
	return set
}

// Operators returns a copy of the operators in declaration order.
func (s OperatorSet) Operators() []FilterOperator {
	out := make([]FilterOperator, len(s.ops))
	copy(out, s.ops)
	return out
}

// Len returns the number of operators in the set.
func (s OperatorSet) Len() int {
	return len(s.ops)
}

// Contains reports whether op is part of the set.
func (s OperatorSet) Contains(op FilterOperator) bool {
	for _, o := range s.ops {
		if o == op {
			return true
		}
	}
	return false
}
