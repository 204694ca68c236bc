package filtergen

import (
	"errors"
	"strings"
	"testing"

	"github.com/rpattn/gqlfilter/internal/schema"
	"github.com/rpattn/gqlfilter/internal/synth"

	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const userSchema = `
type SomeA {
  amount: Int @filter(operators: [lt, gt])
  purpose: String @goField(name: "getPurpose") @filter(operators: [eq, like])
}

type SomeN @inherits(from: "SomeA") {
  amount: Int
  purpose: String
  name: String @filter(operators: [eq])
}

type Query {
  someA(filter: SomeAFilter): SomeA
  someN(filter: SomeNFilter): SomeN
}
`

func TestGenerate(t *testing.T) {
	src, err := Generate(Config{Logger: zerolog.Nop()}, &ast.Source{Name: "schema.graphql", Input: userSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src == nil || src.Name != OutputName {
		t.Fatalf("expected generated source named %s", OutputName)
	}

	for _, want := range []string{"input SomeACondition", "input SomeAFilter", "input SomeNCondition", "input SomeNFilter", "name_eq: String"} {
		if !strings.Contains(src.Input, want) {
			t.Errorf("expected generated SDL to contain %q\n%s", want, src.Input)
		}
	}
}

func TestGenerateWithoutFilters(t *testing.T) {
	src, err := Generate(Config{}, &ast.Source{Name: "schema.graphql", Input: "type Thing { id: ID }\ntype Query { thing: Thing }\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != nil {
		t.Fatalf("expected no source when nothing is filterable, got:\n%s", src.Input)
	}
}

func TestGenerateReportsInvalidSchema(t *testing.T) {
	_, err := Generate(Config{}, &ast.Source{Name: "schema.graphql", Input: `
type Thing { id: ID @filter(operators: [eq]) }
type Query { thing(filter: OtherFilter): Thing }
`})
	if err == nil {
		t.Fatalf("expected reference to an unknown filter type to fail validation")
	}
}

func TestGenerateInterfaceFieldUsesDefaultScalar(t *testing.T) {
	src, err := Generate(Config{}, &ast.Source{Name: "schema.graphql", Input: `
interface Node { id: ID! }
type Post { author: Node @filter(operators: [eq, in]) }
type Query { posts(filter: PostFilter): [Post!] }
`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"author_eq: String", "author_in: [String!]"} {
		if !strings.Contains(src.Input, want) {
			t.Errorf("expected generated SDL to contain %q\n%s", want, src.Input)
		}
	}
}

func TestGenerateExtendedType(t *testing.T) {
	src, err := Generate(Config{}, &ast.Source{Name: "schema.graphql", Input: `
type Post { id: ID }
extend type Post { title: String @filter(operators: [eq]) }
type Query { posts(filter: PostFilter): [Post!] }
`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src == nil || !strings.Contains(src.Input, "title_eq: String") {
		t.Fatalf("expected PostFilter with title_eq, got %v", src)
	}
}

func TestGenerateConflict(t *testing.T) {
	_, err := Generate(Config{}, &ast.Source{Name: "schema.graphql", Input: `
type Thing { id: ID @filter(operators: [eq]) }
input ThingFilter { id: ID }
type Query { thing: Thing }
`})
	if !errors.Is(err, synth.ErrFilterTypeConflict) {
		t.Fatalf("expected hand written ThingFilter to clash with the generated one, got %v", err)
	}
}

// The plugin's early sources must make the user schema loadable on their
// own, the way gqlgen loads it right after early injection.
func TestPluginInjectsFilterTypes(t *testing.T) {
	user := &ast.Source{Name: "schema.graphql", Input: userSchema}
	p := New(Config{Negation: true}, user)
	if p.Name() != "filtergen" {
		t.Fatalf("unexpected plugin name %s", p.Name())
	}

	early, err := p.InjectSourcesEarly()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, src := range early {
		if src == schema.GoFieldDirectives {
			t.Fatalf("expected @goField to be left to gqlgen")
		}
	}

	sources := append([]*ast.Source{schema.GoFieldDirectives}, early...)
	sources = append(sources, user)

	final, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		t.Fatalf("injected sources do not load: %v", err)
	}

	filter := final.Types["SomeNFilter"]
	if filter == nil || len(filter.Fields) != 7 {
		t.Fatalf("expected SomeNFilter with 7 fields")
	}
	if final.Types["BaseOperator"].EnumValues.ForName("NOT") == nil {
		t.Fatalf("expected negation to be enabled")
	}
}
