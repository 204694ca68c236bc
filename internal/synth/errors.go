package synth

import (
	"errors"
	"fmt"

	"github.com/rpattn/gqlfilter/internal/domain"
)

var (
	// ErrModelNotDecorated means the class has no object type anywhere in its
	// ancestry, so there is no model name to derive filter types from.
	ErrModelNotDecorated = errors.New("model not decorated")
	// ErrFilterTypeConflict means a filter type of the same name already
	// exists with different fields.
	ErrFilterTypeConflict = errors.New("filter type conflict")
)

// ModelNotDecoratedError identifies the class that could not be resolved to
// a model.
type ModelNotDecoratedError struct {
	Class *domain.Class
}

func (e *ModelNotDecoratedError) Error() string {
	return fmt.Sprintf("class %q has no object type, declare one before generating its filter", e.Class.Name())
}

func (e *ModelNotDecoratedError) Unwrap() error {
	return ErrModelNotDecorated
}

// FilterTypeConflictError reports a type name claimed by another class or
// declared outside the synthesizer.
type FilterTypeConflictError struct {
	TypeName string
	Class    *domain.Class
	Owner    *domain.Class
}

func (e *FilterTypeConflictError) Error() string {
	if e.Owner == nil {
		return fmt.Sprintf("type %s requested by %q is already declared", e.TypeName, e.Class.Name())
	}
	return fmt.Sprintf("type %s requested by %q was already generated for %q with different fields", e.TypeName, e.Class.Name(), e.Owner.Name())
}

func (e *FilterTypeConflictError) Unwrap() error {
	return ErrFilterTypeConflict
}
