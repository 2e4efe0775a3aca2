package ext

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/c360studio/candv/constants"
)

// ErrValueNotFound is returned by GetByValue when no member holds the value.
var ErrValueNotFound = errors.New("value not found")

// VerboseValued is a constant with a value, a verbose name and a help text.
type VerboseValued interface {
	Valued
	VerboseName() string
	HelpText() string
}

// Constant classes for the payload interfaces.
var (
	ValuesClass        = constants.ClassOf[Valued]()
	VerboseClass       = constants.ClassOf[Verbosed]()
	VerboseValuesClass = constants.ClassOf[VerboseValued]()
)

// Values restricts a container to constants that carry a value.
func Values() constants.Option {
	return constants.WithConstantClass(ValuesClass)
}

// DefineValues defines a container that owns only Valued constants.
func DefineValues(name string, attrs constants.Attrs, opts ...constants.Option) (*constants.Container, error) {
	return constants.Define(name, attrs, append([]constants.Option{Values()}, opts...)...)
}

// MustDefineValues is DefineValues for package-level declarations.
func MustDefineValues(name string, attrs constants.Attrs, opts ...constants.Option) *constants.Container {
	c, err := DefineValues(name, attrs, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// ValueOf returns the value of a member: a Valued constant's value or the
// value merged into a group.
func ValueOf(m constants.Member) (any, bool) {
	switch v := m.(type) {
	case Valued:
		return v.Value(), true
	case *constants.Container:
		return GroupValue(v)
	}
	return nil, false
}

// GetByValue returns the first member holding value.
func GetByValue(c *constants.Container, value any) (constants.Member, error) {
	for m := range c.IterConstants() {
		if v, ok := ValueOf(m); ok && reflect.DeepEqual(v, value) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: constant with value \"%v\" is not present in %q", ErrValueNotFound, value, c.String())
}

// FilterByValue returns every member holding value, in order.
func FilterByValue(c *constants.Container, value any) []constants.Member {
	var found []constants.Member
	for m := range c.IterConstants() {
		if v, ok := ValueOf(m); ok && reflect.DeepEqual(v, value) {
			found = append(found, m)
		}
	}
	return found
}

// ValuesOf lists member values in order. Members without a value yield nil.
func ValuesOf(c *constants.Container) []any {
	values := make([]any, 0, c.Len())
	for v := range IterValuesOf(c) {
		values = append(values, v)
	}
	return values
}

// IterValuesOf iterates member values in order.
func IterValuesOf(c *constants.Container) iter.Seq[any] {
	return func(yield func(any) bool) {
		for m := range c.IterConstants() {
			v, _ := ValueOf(m)
			if !yield(v) {
				return
			}
		}
	}
}
