package schema

import (
	"errors"
	"fmt"

	"github.com/rpattn/gqlfilter/internal/domain"
	"github.com/rpattn/gqlfilter/internal/registry"

	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Directive names understood by the loader.
const (
	FilterDirective   = "filter"
	InheritsDirective = "inherits"
	GoFieldDirective  = "goField"
)

// FilterDirectives declares the directives used to annotate models. It is
// injected ahead of user schemas.
var FilterDirectives = &ast.Source{
	Name: "filter_directives.graphql",
	Input: `enum FilterOperator { lt gt lte gte eq ne in like likeAny exist }
directive @filter(operators: [FilterOperator!]!, type: String) on FIELD_DEFINITION
directive @inherits(from: String!) on OBJECT
`,
	BuiltIn: true,
}

// GoFieldDirectives declares @goField for schemas loaded outside gqlgen,
// which ships its own definition.
var GoFieldDirectives = &ast.Source{
	Name:    "gofield_directive.graphql",
	Input:   "directive @goField(forceResolver: Boolean, name: String, omittable: Boolean) on INPUT_FIELD_DEFINITION | FIELD_DEFINITION\n",
	BuiltIn: true,
}

// MissingDirectives returns the directive sources that sources do not
// declare themselves, in the order they should precede them.
func MissingDirectives(sources ...*ast.Source) ([]*ast.Source, error) {
	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	var missing []*ast.Source
	if doc.Directives.ForName(FilterDirective) == nil {
		missing = append(missing, FilterDirectives)
	}
	if doc.Directives.ForName(GoFieldDirective) == nil {
		missing = append(missing, GoFieldDirectives)
	}
	return missing, nil
}

var (
	// ErrUnknownParent is returned when @inherits names a missing object type.
	ErrUnknownParent = errors.New("unknown parent type")
	// ErrInheritanceCycle is returned when @inherits chains loop.
	ErrInheritanceCycle = errors.New("inheritance cycle")
	// ErrUnknownType is returned when an extension names a missing object type.
	ErrUnknownType = errors.New("unknown type")
)

var rootOperationTypes = map[string]struct{}{
	"Query":        {},
	"Mutation":     {},
	"Subscription": {},
}

var builtinScalars = []string{"String", "Int", "Float", "Boolean", "ID"}

// Loader turns annotated SDL into filter declarations and model metadata.
type Loader struct {
	registry *registry.Registry
	metadata *Metadata
	logger   zerolog.Logger
	classes  map[string]*domain.Class

	// inputTypes holds the names that may type an input field.
	inputTypes map[string]struct{}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used while loading.
func WithLoaderLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader that registers into reg and meta.
func NewLoader(reg *registry.Registry, meta *Metadata, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry:   reg,
		metadata:   meta,
		logger:     zerolog.Nop(),
		classes:    make(map[string]*domain.Class),
		inputTypes: make(map[string]struct{}, len(builtinScalars)),
	}
	for _, name := range builtinScalars {
		l.inputTypes[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Class returns the class loaded for the object type name.
func (l *Loader) Class(name string) (*domain.Class, bool) {
	c, ok := l.classes[name]
	return c, ok
}

// LoadSources parses SDL sources and registers every object type and its
// @filter fields, including fields added by `extend type`. Sources are not
// validated here: they may reference the filter types that are about to be
// generated.
func (l *Loader) LoadSources(sources ...*ast.Source) ([]*domain.Class, error) {
	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	var defs ast.DefinitionList
	for _, def := range doc.Definitions {
		if def.BuiltIn {
			l.noteInputType(def)
			continue
		}
		defs = append(defs, def)
	}

	defs, orphans := mergeExtensions(defs, doc.Extensions)
	loaded, err := l.LoadDefinitions(defs)
	if err != nil {
		return nil, err
	}

	for _, ext := range orphans {
		if isRootOperation(ext.Name) {
			continue
		}
		class, ok := l.Class(ext.Name)
		if !ok {
			return nil, fmt.Errorf("%w %s cannot be extended", ErrUnknownType, ext.Name)
		}
		if err := l.registerFields(class, ext); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

// mergeExtensions folds object extensions into the base definitions found in
// defs. Extensions of types defined elsewhere are returned as orphans.
func mergeExtensions(defs, extensions ast.DefinitionList) (ast.DefinitionList, ast.DefinitionList) {
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		if def.Kind == ast.Object {
			index[def.Name] = i
		}
	}

	var orphans ast.DefinitionList
	for _, ext := range extensions {
		if ext.Kind != ast.Object || ext.BuiltIn {
			continue
		}
		i, ok := index[ext.Name]
		if !ok {
			orphans = append(orphans, ext)
			continue
		}

		merged := *defs[i]
		merged.Fields = append(append(ast.FieldList{}, merged.Fields...), ext.Fields...)
		merged.Directives = append(append(ast.DirectiveList{}, merged.Directives...), ext.Directives...)
		defs[i] = &merged
	}
	return defs, orphans
}

// LoadDefinitions registers object types from defs in order. Parents named
// by @inherits must be part of defs or loaded earlier.
func (l *Loader) LoadDefinitions(defs ast.DefinitionList) ([]*domain.Class, error) {
	objects := make(map[string]*ast.Definition)
	var ordered []*ast.Definition
	for _, def := range defs {
		if def.Kind != ast.Object {
			l.noteInputType(def)
			// Hand written types share the type namespace with generated ones.
			if err := l.metadata.DeclareType(def); err != nil && !errors.Is(err, ErrDuplicateType) {
				return nil, err
			}
			continue
		}
		if isRootOperation(def.Name) {
			continue
		}
		objects[def.Name] = def
		ordered = append(ordered, def)
	}

	fresh := make(map[string]struct{})
	for _, def := range ordered {
		if _, done := l.classes[def.Name]; !done {
			fresh[def.Name] = struct{}{}
		}
	}

	for _, def := range ordered {
		if _, err := l.declareClass(def, objects, map[string]struct{}{}); err != nil {
			return nil, err
		}
	}

	var loaded []*domain.Class
	for _, def := range ordered {
		if _, ok := fresh[def.Name]; !ok {
			continue
		}
		class := l.classes[def.Name]
		if err := l.registerFields(class, def); err != nil {
			return nil, err
		}
		loaded = append(loaded, class)
	}

	l.logger.Debug().Int("models", len(loaded)).Int("declarations", l.registry.Len()).Msg("loaded filter schema")
	return loaded, nil
}

func (l *Loader) declareClass(def *ast.Definition, objects map[string]*ast.Definition, visiting map[string]struct{}) (*domain.Class, error) {
	if class, ok := l.classes[def.Name]; ok {
		return class, nil
	}
	if _, loop := visiting[def.Name]; loop {
		return nil, fmt.Errorf("%w at %s", ErrInheritanceCycle, def.Name)
	}
	visiting[def.Name] = struct{}{}

	var parent *domain.Class
	if parentName := directiveString(def.Directives.ForName(InheritsDirective), "from"); parentName != "" {
		parentDef, ok := objects[parentName]
		switch {
		case ok:
			p, err := l.declareClass(parentDef, objects, visiting)
			if err != nil {
				return nil, err
			}
			parent = p
		case l.classes[parentName] != nil:
			parent = l.classes[parentName]
		default:
			return nil, fmt.Errorf("%w %s inherited by %s", ErrUnknownParent, parentName, def.Name)
		}
	}

	class := domain.NewClass(def.Name, parent)
	l.classes[def.Name] = class
	l.metadata.DeclareObjectType(class, def.Name)
	return class, nil
}

func (l *Loader) registerFields(class *domain.Class, def *ast.Definition) error {
	for _, field := range def.Fields {
		identifier := field.Name
		if goName := directiveString(field.Directives.ForName(GoFieldDirective), "name"); goName != "" && goName != field.Name {
			identifier = goName
			l.metadata.DeclareFieldResolver(class, goName, field.Name)
		}

		filter := field.Directives.ForName(FilterDirective)
		if filter == nil {
			continue
		}

		ops, err := directiveOperators(filter)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", def.Name, field.Name, err)
		}

		l.registry.Filter(class, l.returnType(filter, field), ops...)(identifier)
	}
	return nil
}

// returnType prefers the explicit type argument and otherwise reuses the
// field's own type when it is a scalar, enum or input type. Objects,
// interfaces and unions cannot type an input field and get the default.
func (l *Loader) returnType(filter *ast.Directive, field *ast.FieldDefinition) domain.ReturnTypeFunc {
	if name := directiveString(filter, "type"); name != "" {
		return func() string { return name }
	}

	named := field.Type.Name()
	if _, ok := l.inputTypes[named]; !ok {
		return nil
	}
	return func() string { return named }
}

func (l *Loader) noteInputType(def *ast.Definition) {
	switch def.Kind {
	case ast.Scalar, ast.Enum, ast.InputObject:
		l.inputTypes[def.Name] = struct{}{}
	}
}

func directiveOperators(d *ast.Directive) ([]domain.FilterOperator, error) {
	arg := d.Arguments.ForName("operators")
	if arg == nil || arg.Value == nil {
		return nil, fmt.Errorf("@%s requires operators", FilterDirective)
	}

	var tags []string
	switch arg.Value.Kind {
	case ast.ListValue:
		for _, child := range arg.Value.Children {
			tags = append(tags, child.Value.Raw)
		}
	default:
		tags = append(tags, arg.Value.Raw)
	}

	ops := make([]domain.FilterOperator, 0, len(tags))
	for _, tag := range tags {
		op, ok := domain.ParseFilterOperator(tag)
		if !ok {
			return nil, fmt.Errorf("unknown filter operator %q", tag)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func directiveString(d *ast.Directive, name string) string {
	if d == nil {
		return ""
	}
	arg := d.Arguments.ForName(name)
	if arg == nil || arg.Value == nil {
		return ""
	}
	return arg.Value.Raw
}

func isRootOperation(name string) bool {
	_, ok := rootOperationTypes[name]
	return ok
}
