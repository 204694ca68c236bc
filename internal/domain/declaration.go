package domain

// DefaultScalar is the field type used when a declaration does not provide
// its own return type.
const DefaultScalar = "String"

// ReturnTypeFunc supplies the named schema type of a filterable field. It is
// evaluated lazily so declarations may reference types declared later.
type ReturnTypeFunc func() string

// Declaration binds a field of a class to the operators it can be filtered
// with. Declarations are immutable once registered.
type Declaration struct {
	Class      *Class
	Field      string
	Operators  OperatorSet
	ReturnType ReturnTypeFunc
}

// BaseType resolves the declared return type, falling back to fallback when
// none was provided.
func (d Declaration) BaseType(fallback string) string {
	if d.ReturnType != nil {
		if name := d.ReturnType(); name != "" {
			return name
		}
	}
	return fallback
}

// ObjectType is a model descriptor: a class exposed as a named object type.
type ObjectType struct {
	Name  string
	Class *Class
}

// FieldResolver maps a computed member of a class to its exposed schema name.
type FieldResolver struct {
	Class      *Class
	MethodName string
	SchemaName string
}
