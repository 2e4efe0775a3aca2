package constants

import (
	"context"
	"fmt"

	"github.com/c360studio/candv/registry"
)

// UnboundContainerName prefixes the full name of a constant without a container.
const UnboundContainerName = "__UNBOUND__"

// Member is anything a container owns: a bound Constant or a nested group.
type Member interface {
	// Name returns the attribute name the member was declared under.
	Name() string

	// FullName returns the dotted path from the root container.
	FullName() string

	// CreationOrder returns the token that fixes the member's position.
	CreationOrder() uint64

	// ToPrimitive renders the member as plain maps and slices.
	ToPrimitive(ctx context.Context) Primitive

	String() string
}

// Constant is an atomic named member of a container.
//
// Implementations outside this package embed *SimpleConstant, which carries
// identity and binding. Payload types override MergeInto and ToPrimitive to
// add their own fields, calling the embedded versions first.
type Constant interface {
	Member

	// Container returns the owning container, or nil while unbound.
	Container() *Container

	// MergeInto copies the constant's metadata onto a group it anchors.
	MergeInto(g *GroupBuilder)

	simple() *SimpleConstant
}

// SimpleConstant is the base constant. It holds no payload.
type SimpleConstant struct {
	name      string
	container *Container
	order     uint64
}

// New creates an unbound constant ordered after every constant created before it.
func New() *SimpleConstant {
	return &SimpleConstant{order: registry.Global().NextOrder()}
}

// Name returns the constant's attribute name, empty until declared.
func (c *SimpleConstant) Name() string {
	return c.name
}

// Container returns the owning container, or nil while unbound.
func (c *SimpleConstant) Container() *Container {
	return c.container
}

// CreationOrder returns the constant's creation-order token.
func (c *SimpleConstant) CreationOrder() uint64 {
	return c.order
}

// FullName returns the container's full name joined with the constant name.
func (c *SimpleConstant) FullName() string {
	prefix := UnboundContainerName
	if c.container != nil {
		prefix = c.container.FullName()
	}
	return prefix + "." + c.name
}

// IsBound reports whether the constant belongs to a container.
func (c *SimpleConstant) IsBound() bool {
	return c.container != nil
}

// MergeInto copies the creation order onto the group.
func (c *SimpleConstant) MergeInto(g *GroupBuilder) {
	g.SetCreationOrder(c.order)
}

// ToPrimitive returns {"name": name}.
func (c *SimpleConstant) ToPrimitive(_ context.Context) Primitive {
	return Primitive{"name": c.name}
}

func (c *SimpleConstant) String() string {
	return fmt.Sprintf("<constant '%s'>", c.FullName())
}

func (c *SimpleConstant) simple() *SimpleConstant {
	return c
}

// bind assigns the name and owner. It succeeds once per constant.
func (c *SimpleConstant) bind(container *Container, name string) error {
	if c.container != nil {
		return fmt.Errorf("%w: cannot bind %q to %q as %q: already bound to %q",
			ErrConstantAlreadyBound, c.String(), container.String(), name, c.container.String())
	}
	c.name = name
	c.container = container
	return nil
}

// Equal reports whether a and b share a full name.
// Structurally mirrored containers defined in different places compare equal.
func Equal(a, b Constant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.FullName() == b.FullName()
}

// baseOf returns the embedded *SimpleConstant, or nil when a payload type was
// built without one. A nil embedded pointer further up the chain panics on
// promotion, so that is reported as nil too.
func baseOf(c Constant) (sc *SimpleConstant) {
	defer func() {
		if recover() != nil {
			sc = nil
		}
	}()
	return c.simple()
}

// checkBase rejects constants whose embedded *SimpleConstant was never set.
func checkBase(c Constant) error {
	if baseOf(c) == nil {
		return fmt.Errorf("%w: %T was not created with constants.New", ErrUninitializedConstant, c)
	}
	return nil
}
