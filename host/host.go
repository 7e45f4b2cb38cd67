// Package host is the runtime the generated bindings register into: one
// property table per class, dispatching reads and writes to methods on a
// host object.
package host

import (
	"errors"
	"fmt"
)

// Object is the host instance whose methods the generated accessors invoke.
// Call dispatches a named method with positional arguments and returns its
// result; methods without a result return nil.
type Object interface {
	Call(method string, args ...any) any
}

// Getter reads a property from a host object.
type Getter func(obj Object) any

// Setter writes a property on a host object.
type Setter func(obj Object, value any)

var (
	ErrUnknownProperty  = errors.New("unknown property")
	ErrReadOnlyProperty = errors.New("property is read-only")
)

type property struct {
	get Getter
	set Setter
}

// Class is a table of property accessors, keyed by the bound identifier.
type Class struct {
	name       string
	properties map[string]property
	order      []string
}

func NewClass(name string) *Class {
	return &Class{
		name:       name,
		properties: make(map[string]property),
	}
}

func (class *Class) Name() string {
	return class.name
}

// BindProperty registers the accessor pair for one property. A nil setter
// makes the property read-only.
func (class *Class) BindProperty(name string, get Getter, set Setter) {
	if _, taken := class.properties[name]; !taken {
		class.order = append(class.order, name)
	}
	class.properties[name] = property{get, set}
}

// Properties returns the bound identifiers in registration order.
func (class *Class) Properties() []string {
	return append([]string(nil), class.order...)
}

// Get reads the named property from the given host object.
func (class *Class) Get(obj Object, name string) (any, error) {
	bound, found := class.properties[name]
	if !found {
		return nil, fmt.Errorf("%s.%s: %w", class.name, name, ErrUnknownProperty)
	}

	return bound.get(obj), nil
}

// Set writes the named property on the given host object. Writes to a
// property bound without a setter are rejected.
func (class *Class) Set(obj Object, name string, value any) error {
	bound, found := class.properties[name]
	if !found {
		return fmt.Errorf("%s.%s: %w", class.name, name, ErrUnknownProperty)
	}

	if bound.set == nil {
		return fmt.Errorf("%s.%s: %w", class.name, name, ErrReadOnlyProperty)
	}

	bound.set(obj, value)
	return nil
}
