package schema

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Render prints defs as SDL, keeping their order.
func Render(defs []*ast.Definition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(&ast.SchemaDocument{
		Definitions: ast.DefinitionList(defs),
	})
	return buf.String()
}

// Source wraps the rendered defs in a named schema source.
func Source(name string, defs []*ast.Definition) *ast.Source {
	return &ast.Source{Name: name, Input: Render(defs)}
}

// Validate loads base together with defs and returns the resulting schema.
// It is how synthesized types are checked against the schema they extend.
func Validate(defs []*ast.Definition, base ...*ast.Source) (*ast.Schema, error) {
	sources := append([]*ast.Source{}, base...)
	sources = append(sources, Source("filters.graphql", defs))

	s, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to validate filter types: %w", err)
	}
	return s, nil
}
