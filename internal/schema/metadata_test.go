package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/rpattn/gqlfilter/internal/domain"

	"github.com/vektah/gqlparser/v2/ast"
)

func TestDeclareObjectTypeDefaultsToClassName(t *testing.T) {
	meta := NewMetadata()
	class := domain.NewClass("Order", nil)

	if ot := meta.DeclareObjectType(class, ""); ot.Name != "Order" {
		t.Fatalf("expected class name to be used, got %s", ot.Name)
	}
	meta.DeclareObjectType(class, "PurchaseOrder")

	models := meta.ObjectTypesFor(class)
	if len(models) != 2 || models[1].Name != "PurchaseOrder" {
		t.Fatalf("expected both models in declaration order, got %+v", models)
	}
	if len(meta.ObjectTypesFor(domain.NewClass("Order", nil))) != 0 {
		t.Fatalf("expected lookup by class identity, not name")
	}
}

func TestDeclareFieldResolver(t *testing.T) {
	meta := NewMetadata()
	class := domain.NewClass("Order", nil)
	meta.DeclareFieldResolver(class, "getTotal", "total")
	meta.DeclareFieldResolver(class, "status", "")

	resolvers := meta.FieldResolvers()
	if len(resolvers) != 2 {
		t.Fatalf("expected 2 resolvers, got %d", len(resolvers))
	}
	if resolvers[0].SchemaName != "total" || resolvers[1].SchemaName != "status" {
		t.Fatalf("unexpected schema names %+v", resolvers)
	}
}

func TestDeclareTypeRejectsDuplicates(t *testing.T) {
	meta := NewMetadata()
	def := &ast.Definition{Kind: ast.InputObject, Name: "OrderFilter"}

	if err := meta.DeclareType(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := meta.DeclareType(&ast.Definition{Kind: ast.InputObject, Name: "OrderFilter"})
	if !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("expected ErrDuplicateType, got %v", err)
	}

	if got, ok := meta.LookupType("OrderFilter"); !ok || got != def {
		t.Fatalf("expected first declaration to be kept")
	}
}

func TestRenderKeepsOrder(t *testing.T) {
	defs := []*ast.Definition{
		{Kind: ast.Enum, Name: "Zeta", EnumValues: ast.EnumValueList{{Name: "A"}}},
		{Kind: ast.InputObject, Name: "Alpha", Fields: ast.FieldList{{Name: "x", Type: ast.NamedType("Int", nil)}}},
	}

	out := Render(defs)
	if strings.Index(out, "enum Zeta") > strings.Index(out, "input Alpha") {
		t.Fatalf("expected declaration order to be kept:\n%s", out)
	}
}

func TestValidateReportsUnknownTypes(t *testing.T) {
	defs := []*ast.Definition{
		{Kind: ast.InputObject, Name: "Broken", Fields: ast.FieldList{{Name: "x", Type: ast.NamedType("Missing", nil)}}},
	}
	base := &ast.Source{Name: "query.graphql", Input: "type Query { ping: String }"}

	if _, err := Validate(defs, base); err == nil {
		t.Fatalf("expected validation to fail for unknown type")
	}
}
