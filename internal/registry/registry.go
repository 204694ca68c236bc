package registry

import (
	"sync"

	"github.com/rpattn/gqlfilter/internal/domain"
)

// Registry stores filter declarations for the lifetime of a schema build.
// It only grows; declarations are never removed or changed.
type Registry struct {
	mu           sync.Mutex
	declarations []domain.Declaration
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register records that field of class can be filtered with operators.
// Nothing is validated here; unknown operators or fields without a model
// surface when the filter type is synthesized.
func (r *Registry) Register(class *domain.Class, field string, operators domain.OperatorSet, returnType domain.ReturnTypeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.declarations = append(r.declarations, domain.Declaration{
		Class:      class,
		Field:      field,
		Operators:  operators,
		ReturnType: returnType,
	})
}

// Filter returns a registration func bound to class and operators, handy
// when the same operator set applies to several fields.
func (r *Registry) Filter(class *domain.Class, returnType domain.ReturnTypeFunc, operators ...domain.FilterOperator) func(field string) {
	set := domain.Ops(operators...)
	return func(field string) {
		r.Register(class, field, set, returnType)
	}
}

// DeclarationsFor returns the declarations whose declaring class is exactly
// class, in registration order. Inherited declarations are not included.
func (r *Registry) DeclarationsFor(class *domain.Class) []domain.Declaration {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Declaration
	for _, d := range r.declarations {
		if d.Class == class {
			result = append(result, d)
		}
	}
	return result
}

// All returns a snapshot of every declaration.
func (r *Registry) All() []domain.Declaration {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Declaration, len(r.declarations))
	copy(result, r.declarations)
	return result
}

// Len returns the number of registered declarations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.declarations)
}
