// Package synth builds the Condition and Filter input types of a model from
// its registered filter declarations.
package synth

import (
	"fmt"
	"sync"

	"github.com/rpattn/gqlfilter/internal/domain"
	"github.com/rpattn/gqlfilter/internal/registry"
	"github.com/rpattn/gqlfilter/internal/schema"
	"github.com/rpattn/gqlfilter/internal/schema/validator"

	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
)

const (
	conditionSuffix = "Condition"
	filterSuffix    = "Filter"

	operatorField   = "operator"
	conditionsField = "conditions"
)

// TypeProvider returns a synthesized type. Schema builders call it when they
// resolve argument types, which lets models reference each other freely.
type TypeProvider func() *ast.Definition

// Synthesizer turns filter declarations into input types. Types are nominal
// and declared once per model; asking again returns the stored type.
type Synthesizer struct {
	mu            sync.Mutex
	registry      *registry.Registry
	metadata      *schema.Metadata
	logger        zerolog.Logger
	negation      bool
	defaultScalar string

	baseOperator *ast.Definition
	generated    map[string]*generatedTypes
	definitions  []*ast.Definition
}

type generatedTypes struct {
	class     *domain.Class
	condition *ast.Definition
	filter    *ast.Definition
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// WithNegation adds NOT to the combinator enum.
func WithNegation(enabled bool) Option {
	return func(s *Synthesizer) {
		s.negation = enabled
	}
}

// WithDefaultScalar changes the type used for declarations without a return
// type. The default is String.
func WithDefaultScalar(name string) Option {
	return func(s *Synthesizer) {
		if name != "" {
			s.defaultScalar = name
		}
	}
}

// New creates a synthesizer reading declarations from reg and models from
// meta. Generated types are declared into meta.
func New(reg *registry.Registry, meta *schema.Metadata, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		registry:      reg,
		metadata:      meta,
		logger:        zerolog.Nop(),
		defaultScalar: domain.DefaultScalar,
		generated:     make(map[string]*generatedTypes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns the Filter type of class, generating it and its
// Condition type on first use.
func (s *Synthesizer) Synthesize(class *domain.Class) (TypeProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types, err := s.synthesize(class)
	if err != nil {
		return nil, err
	}

	filter := types.filter
	return func() *ast.Definition { return filter }, nil
}

// SynthesizeAll generates filter types for every model whose class, or one
// of its ancestors, declares filters. Models are visited in declaration order.
func (s *Synthesizer) SynthesizeAll() ([]*ast.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	declaring := make(map[*domain.Class]struct{})
	for _, decl := range s.registry.All() {
		declaring[decl.Class] = struct{}{}
	}

	var filters []*ast.Definition
	seen := make(map[*domain.Class]struct{})
	for _, ot := range s.metadata.ObjectTypes() {
		if _, done := seen[ot.Class]; done {
			continue
		}
		seen[ot.Class] = struct{}{}

		if !declaresFilters(ot.Class, declaring) {
			continue
		}

		types, err := s.synthesize(ot.Class)
		if err != nil {
			return nil, err
		}
		filters = append(filters, types.filter)
	}
	return filters, nil
}

// Definitions returns every type the synthesizer declared, in order.
func (s *Synthesizer) Definitions() []*ast.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ast.Definition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

// Source renders every declared type as a schema source.
func (s *Synthesizer) Source(name string) *ast.Source {
	return schema.Source(name, s.Definitions())
}

func (s *Synthesizer) synthesize(class *domain.Class) (*generatedTypes, error) {
	if class == nil {
		return nil, &ModelNotDecoratedError{}
	}

	chain := class.Ancestry()
	model, ok := s.resolveModel(class, chain)
	if !ok {
		return nil, &ModelNotDecoratedError{Class: class}
	}

	decls := s.gather(chain)
	if err := validator.ValidateDeclarations(decls); err != nil {
		return nil, fmt.Errorf("invalid filters for %s: %w", class.Name(), err)
	}

	fields, err := s.conditionFields(chain, decls)
	if err != nil {
		return nil, fmt.Errorf("invalid filters for %s: %w", class.Name(), err)
	}

	conditionName := model.Name + conditionSuffix
	filterName := model.Name + filterSuffix

	if existing, ok := s.generated[filterName]; ok {
		if !sameFields(existing.condition.Fields, fields) {
			return nil, &FilterTypeConflictError{TypeName: filterName, Class: class, Owner: existing.class}
		}
		s.logger.Debug().Str("class", class.Name()).Str("type", filterName).Msg("reusing filter type")
		return existing, nil
	}

	for _, name := range []string{conditionName, filterName} {
		if _, taken := s.metadata.LookupType(name); taken {
			return nil, &FilterTypeConflictError{TypeName: name, Class: class}
		}
	}

	if err := s.ensureBaseOperator(); err != nil {
		return nil, err
	}

	condition := &ast.Definition{
		Kind:   ast.InputObject,
		Name:   conditionName,
		Fields: fields,
	}

	// The Filter type repeats the Condition fields and nests conditions.
	filterFields := make(ast.FieldList, 0, len(fields)+1)
	filterFields = append(filterFields, fields...)
	filterFields = append(filterFields, &ast.FieldDefinition{
		Name: conditionsField,
		Type: ast.ListType(ast.NonNullNamedType(conditionName, nil), nil),
	})
	filter := &ast.Definition{
		Kind:   ast.InputObject,
		Name:   filterName,
		Fields: filterFields,
	}

	for _, def := range []*ast.Definition{condition, filter} {
		if err := s.metadata.DeclareType(def); err != nil {
			return nil, fmt.Errorf("failed to declare %s: %w", def.Name, err)
		}
		s.definitions = append(s.definitions, def)
	}

	types := &generatedTypes{class: class, condition: condition, filter: filter}
	s.generated[filterName] = types

	s.logger.Debug().
		Str("class", class.Name()).
		Str("model", model.Name).
		Int("fields", len(fields)).
		Msg("generated filter type")

	return types, nil
}

// resolveModel picks the object type filters are named after. A model named
// exactly like the class wins; otherwise the nearest class in the ancestry
// that has a model is used, taking its last declared model.
func (s *Synthesizer) resolveModel(class *domain.Class, chain []*domain.Class) (domain.ObjectType, bool) {
	var nearest []domain.ObjectType
	for _, c := range chain {
		candidates := s.metadata.ObjectTypesFor(c)
		for _, ot := range candidates {
			if ot.Name == class.Name() {
				return ot, true
			}
		}
		if nearest == nil && len(candidates) > 0 {
			nearest = candidates
		}
	}

	if len(nearest) == 0 {
		return domain.ObjectType{}, false
	}
	return nearest[len(nearest)-1], true
}

// gather collects the declarations of every class in chain, root-most class
// first so inherited fields precede the class's own.
func (s *Synthesizer) gather(chain []*domain.Class) []domain.Declaration {
	var decls []domain.Declaration
	for i := len(chain) - 1; i >= 0; i-- {
		decls = append(decls, s.registry.DeclarationsFor(chain[i])...)
	}
	return decls
}

func (s *Synthesizer) conditionFields(chain []*domain.Class, decls []domain.Declaration) (ast.FieldList, error) {
	fields := ast.FieldList{{
		Name: operatorField,
		Type: ast.NamedType(domain.BaseOperatorTypeName, nil),
	}}
	seen := make(map[string]*ast.Type)

	resolvers := s.metadata.FieldResolvers()
	for _, decl := range decls {
		name := exposedName(decl, chain, resolvers)
		base := decl.BaseType(s.defaultScalar)

		for _, op := range decl.Operators.Operators() {
			fieldName := name + "_" + string(op)
			typ := ast.NamedType(base, nil)
			if op.ReturnsArray() {
				typ = ast.ListType(ast.NonNullNamedType(base, nil), nil)
			}

			// Redeclared filters keep the first entry as long as the type agrees.
			if prev, dup := seen[fieldName]; dup {
				if prev.String() != typ.String() {
					return nil, fmt.Errorf("%w: %s is declared as both %s and %s", ErrFilterTypeConflict, fieldName, prev, typ)
				}
				continue
			}
			if err := validator.ValidateFieldName(fieldName); err != nil {
				return nil, err
			}
			seen[fieldName] = typ
			fields = append(fields, &ast.FieldDefinition{Name: fieldName, Type: typ})
		}
	}
	return fields, nil
}

func (s *Synthesizer) ensureBaseOperator() error {
	if s.baseOperator != nil {
		return nil
	}

	if existing, ok := s.metadata.LookupType(domain.BaseOperatorTypeName); ok {
		if existing.Kind != ast.Enum {
			return fmt.Errorf("%w: %s is declared as %s", ErrFilterTypeConflict, existing.Name, existing.Kind)
		}
		s.baseOperator = existing
		return nil
	}

	def := &ast.Definition{
		Kind: ast.Enum,
		Name: domain.BaseOperatorTypeName,
	}
	for _, op := range domain.BaseOperators(s.negation) {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: op.EnumValue()})
	}

	if err := s.metadata.DeclareType(def); err != nil {
		return fmt.Errorf("failed to declare %s: %w", def.Name, err)
	}
	s.baseOperator = def
	s.definitions = append(s.definitions, def)
	return nil
}

func declaresFilters(class *domain.Class, declaring map[*domain.Class]struct{}) bool {
	for _, c := range class.Ancestry() {
		if _, ok := declaring[c]; ok {
			return true
		}
	}
	return false
}

// exposedName returns the schema name of a declared member. Computed members
// may be renamed; plain properties keep their identifier.
func exposedName(decl domain.Declaration, chain []*domain.Class, resolvers []domain.FieldResolver) string {
	for _, fr := range resolvers {
		if fr.MethodName != decl.Field {
			continue
		}
		for _, c := range chain {
			if fr.Class == c {
				return fr.SchemaName
			}
		}
	}
	return decl.Field
}

func sameFields(a, b ast.FieldList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type.String() != b[i].Type.String() {
			return false
		}
	}
	return true
}
