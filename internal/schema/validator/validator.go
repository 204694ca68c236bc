package validator

import (
	"fmt"
	"strings"

	"github.com/rpattn/gqlfilter/internal/domain"
)

// ValidateDeclarations checks declarations gathered for a filter type. It
// runs when the type is synthesized, never at registration.
func ValidateDeclarations(decls []domain.Declaration) error {
	for _, decl := range decls {
		field := strings.TrimSpace(decl.Field)
		if field == "" {
			return fmt.Errorf("filter declared on %s has no field", decl.Class.Name())
		}

		if decl.Operators.Len() == 0 {
			return fmt.Errorf("field %s of %s declares no filter operators", field, decl.Class.Name())
		}

		for _, op := range decl.Operators.Operators() {
			if !op.IsValid() {
				return fmt.Errorf("field %s of %s uses unknown filter operator %q", field, decl.Class.Name(), op)
			}
		}
	}

	return nil
}

// ValidateFieldName ensures a synthesized input field name is a legal schema
// name.
func ValidateFieldName(name string) error {
	if !IsName(name) {
		return fmt.Errorf("field name %q is not a valid schema name", name)
	}

	return nil
}

// IsName reports whether s matches /[_A-Za-z][_0-9A-Za-z]*/.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
