package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rpattn/gqlfilter/internal/domain"

	"github.com/vektah/gqlparser/v2/ast"
)

// ErrDuplicateType is returned when a nominal type name is declared twice.
var ErrDuplicateType = errors.New("type already declared")

// Metadata holds what the schema layer knows about models: which classes are
// exposed as object types, which computed members are renamed, and which
// nominal types have been declared.
type Metadata struct {
	mu             sync.Mutex
	objectTypes    []domain.ObjectType
	fieldResolvers []domain.FieldResolver
	typeIndex      map[string]*ast.Definition
}

// NewMetadata creates empty schema metadata.
func NewMetadata() *Metadata {
	return &Metadata{typeIndex: make(map[string]*ast.Definition)}
}

// DeclareObjectType exposes class as an object type. An empty name defaults
// to the class name.
func (m *Metadata) DeclareObjectType(class *domain.Class, name string) domain.ObjectType {
	if name == "" {
		name = class.Name()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ot := domain.ObjectType{Name: name, Class: class}
	m.objectTypes = append(m.objectTypes, ot)
	return ot
}

// DeclareFieldResolver records that method of class is exposed under
// schemaName. An empty schemaName keeps the method name.
func (m *Metadata) DeclareFieldResolver(class *domain.Class, method, schemaName string) {
	if schemaName == "" {
		schemaName = method
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.fieldResolvers = append(m.fieldResolvers, domain.FieldResolver{
		Class:      class,
		MethodName: method,
		SchemaName: schemaName,
	})
}

// ObjectTypes returns every model descriptor in declaration order.
func (m *Metadata) ObjectTypes() []domain.ObjectType {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ObjectType, len(m.objectTypes))
	copy(out, m.objectTypes)
	return out
}

// ObjectTypesFor returns the models declared for exactly class.
func (m *Metadata) ObjectTypesFor(class *domain.Class) []domain.ObjectType {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.ObjectType
	for _, ot := range m.objectTypes {
		if ot.Class == class {
			out = append(out, ot)
		}
	}
	return out
}

// FieldResolvers returns every resolver mapping in declaration order.
func (m *Metadata) FieldResolvers() []domain.FieldResolver {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.FieldResolver, len(m.fieldResolvers))
	copy(out, m.fieldResolvers)
	return out
}

// DeclareType marks def as a nominal type. Names are global, so declaring the
// same name twice fails with ErrDuplicateType.
func (m *Metadata) DeclareType(def *ast.Definition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("cannot declare unnamed type")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.typeIndex[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Name)
	}
	m.typeIndex[def.Name] = def
	return nil
}

// LookupType returns the declared type named name.
func (m *Metadata) LookupType(name string) (*ast.Definition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, ok := m.typeIndex[name]
	return def, ok
}
