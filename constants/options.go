package constants

import (
	"fmt"
	"reflect"

	"github.com/c360studio/candv/registry"
)

var constantType = reflect.TypeFor[Constant]()

// ClassOf returns the constant class for T, for use with WithConstantClass.
// T is either a concrete constant type such as *ext.ValueConstant or an
// interface that embeds Constant.
func ClassOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// BaseClass is the default constant class: every Constant is owned.
var BaseClass = constantType

// Option configures a container or a group.
type Option func(*settings)

type settings struct {
	class    reflect.Type
	registry *registry.Registry
}

func newSettings(opts []Option) *settings {
	s := &settings{class: BaseClass}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = registry.Global()
	}
	return s
}

// WithConstantClass narrows the constants a container owns to those
// assignable to class. Broader constants stay reachable through Attr but are
// not members.
func WithConstantClass(class reflect.Type) Option {
	return func(s *settings) {
		s.class = class
	}
}

// WithRegistry records the definition in r instead of the global registry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *settings) {
		s.registry = r
	}
}

// validateClass checks that the class can hold constants. owner names the
// container being defined.
func (s *settings) validateClass(owner string) error {
	if s.class == nil || !s.class.Implements(constantType) {
		return fmt.Errorf("%w: %q for %q must implement %q, got %q",
			ErrInvalidConstantClass, "constant_class", owner, constantType.String(), className(s.class))
	}
	return nil
}

// accepts reports whether c belongs to the class.
func (s *settings) accepts(c Constant) bool {
	return reflect.TypeOf(c).AssignableTo(s.class)
}

func className(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
