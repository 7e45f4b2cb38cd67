package metadata

// PropertyDescriptor describes one property exposed by a host class: the
// externally visible name, the zero-argument accessor method read from, and
// optionally the one-argument mutator method written through. An empty
// Setter makes the property read-only.
type PropertyDescriptor struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Getter string `yaml:"getter" toml:"getter" json:"getter"`
	Setter string `yaml:"setter,omitempty" toml:"setter,omitempty" json:"setter,omitempty"`

	// BoundArgs are extra literals forwarded to the getter and setter calls.
	// Experimental; see the manifest documentation before relying on it.
	BoundArgs []any `yaml:"bound_args,omitempty" toml:"bound_args,omitempty" json:"bound_args,omitempty"`
}

// ReadOnly reports whether the property has no mutator method.
func (descriptor PropertyDescriptor) ReadOnly() bool {
	return descriptor.Setter == ""
}

// Class groups the property descriptors of one host class. Each class
// becomes one generated file.
type Class struct {
	Name       string               `yaml:"class" toml:"class" json:"class"`
	Properties []PropertyDescriptor `yaml:"properties" toml:"properties" json:"properties"`
}

type Manifest struct {
	Classes []Class `yaml:"classes" toml:"classes" json:"classes"`
}
