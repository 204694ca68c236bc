package domain

// Class identifies a model class. Identity is the pointer: two classes with
// the same name are still distinct. The parent is fixed when the class is
// declared; a nil parent means the class derives directly from the root.
type Class struct {
	name   string
	parent *Class
}

// NewClass declares a class with an optional parent.
func NewClass(name string, parent *Class) *Class {
	return &Class{name: name, parent: parent}
}

// Name returns the declared class name.
func (c *Class) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Parent returns the immediate parent class, or nil at the root.
func (c *Class) Parent() *Class {
	if c == nil {
		return nil
	}
	return c.parent
}

// Ancestry returns c followed by each of its ancestors, most derived first.
// The root is not part of the result.
func (c *Class) Ancestry() []*Class {
	var chain []*Class
	for current := c; current != nil; current = current.parent {
		chain = append(chain, current)
	}
	return chain
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return c.Name()
}
