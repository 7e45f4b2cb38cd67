package generation

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dave/jennifer/jen"

	"hostbind/internal/metadata"
)

var (
	ErrEmptyName           = errors.New("property name is empty")
	ErrEmptyGetter         = errors.New("getter method is empty")
	ErrIdentifierCollision = errors.New("identifier already bound")
	ErrClassCollision      = errors.New("class file already generated")
)

// GenerationError reports a descriptor the emitter refused to generate code
// for. It wraps one of ErrEmptyName, ErrEmptyGetter or
// ErrIdentifierCollision.
type GenerationError struct {
	Property string // descriptor name as given in the manifest
	Cause    error
	Detail   string
}

func (genError *GenerationError) Error() string {
	if genError.Detail != "" {
		return fmt.Sprintf("property %q: %v: %s", genError.Property, genError.Cause, genError.Detail)
	}

	return fmt.Sprintf("property %q: %v", genError.Property, genError.Cause)
}

func (genError *GenerationError) Unwrap() error {
	return genError.Cause
}

// SanitizeIdentifier maps a property name to a valid Go identifier by
// replacing every rune that cannot appear at its position with an
// underscore. Identity on names that already are valid identifiers. Not
// injective: "a/b" and "a_b" both map to "a_b".
func SanitizeIdentifier(name string) string {
	runes := []rune(name)
	for i, r := range runes {
		if !identifierRune(r, i == 0) {
			runes[i] = '_'
		}
	}

	return string(runes)
}

func identifierRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}

	return !first && unicode.IsDigit(r)
}

// binding is the structured intermediate form of one property: the
// sanitized identifier plus the host methods its accessors delegate to.
type binding struct {
	identifier string
	getter     string
	setter     string
	boundArgs  []any
}

func (bound binding) render(hostPackage string) *jen.Statement {
	return jen.Id("class").Dot("BindProperty").Call(
		jen.Lit(bound.identifier),
		bound.renderGetter(hostPackage),
		bound.renderSetter(hostPackage),
	)
}

func (bound binding) renderGetter(hostPackage string) *jen.Statement {
	return jen.Func().
		Params(jen.Id("obj").Qual(hostPackage, "Object")).
		Any().
		Block(jen.Return(jen.Id("obj").Dot("Call").CallFunc(func(group *jen.Group) {
			group.Lit(bound.getter)
			for _, arg := range bound.boundArgs {
				group.Lit(arg)
			}
		})))
}

func (bound binding) renderSetter(hostPackage string) *jen.Statement {
	if bound.setter == "" {
		return jen.Nil()
	}

	// ToDo: confirm that bound arguments really precede the assigned value
	// in the mutator signature once a second host API needs them.
	return jen.Func().
		Params(jen.Id("obj").Qual(hostPackage, "Object"), jen.Id("value").Any()).
		Block(jen.Id("obj").Dot("Call").CallFunc(func(group *jen.Group) {
			group.Lit(bound.setter)
			for _, arg := range bound.boundArgs {
				group.Lit(arg)
			}
			group.Id("value")
		}))
}

// Batch tracks the identifiers bound so far in one generation run. Each run
// must use its own Batch; sharing one across runs would report collisions
// between unrelated batches.
type Batch struct {
	hostPackage string
	bound       map[string]string
}

func NewBatch(hostPackage string) *Batch {
	return &Batch{
		hostPackage,
		make(map[string]string),
	}
}

// EmitProperty turns one descriptor into the statement registering its
// accessor pair. Read and write accessor share the sanitized identifier; a
// descriptor without a setter gets nil in the setter slot, so writes fail in
// the host layer. Nothing is emitted for a descriptor that fails validation.
func (batch *Batch) EmitProperty(descriptor metadata.PropertyDescriptor) (*jen.Statement, error) {
	bound, err := batch.bind(descriptor)
	if err != nil {
		return nil, err
	}

	return bound.render(batch.hostPackage), nil
}

func (batch *Batch) bind(descriptor metadata.PropertyDescriptor) (binding, error) {
	if descriptor.Name == "" {
		return binding{}, &GenerationError{Cause: ErrEmptyName}
	}

	if descriptor.Getter == "" {
		return binding{}, &GenerationError{Property: descriptor.Name, Cause: ErrEmptyGetter}
	}

	identifier := SanitizeIdentifier(descriptor.Name)
	if previous, taken := batch.bound[identifier]; taken {
		return binding{}, &GenerationError{
			Property: descriptor.Name,
			Cause:    ErrIdentifierCollision,
			Detail:   fmt.Sprintf("identifier %q is already bound by property %q", identifier, previous),
		}
	}
	batch.bound[identifier] = descriptor.Name

	return binding{
		identifier: identifier,
		getter:     descriptor.Getter,
		setter:     descriptor.Setter,
		boundArgs:  descriptor.BoundArgs,
	}, nil
}

// EmitAll emits the registration statements for all descriptors in input
// order. Any failing descriptor aborts the whole batch with no output.
func EmitAll(hostPackage string, descriptors []metadata.PropertyDescriptor) ([]jen.Code, error) {
	batch := NewBatch(hostPackage)
	statements := make([]jen.Code, 0, len(descriptors))
	for _, descriptor := range descriptors {
		statement, err := batch.EmitProperty(descriptor)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}

	return statements, nil
}
