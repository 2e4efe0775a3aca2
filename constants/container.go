package constants

import (
	"context"
	"fmt"
	"iter"
	"reflect"
)

// Attr is one declared attribute of a container body.
type Attr struct {
	Name  string
	Value any
}

// Attrs is a container body in declaration order. A repeated name keeps the
// later value, as reassigning a variable would.
type Attrs []Attr

// Item is a member paired with its name.
type Item struct {
	Name   string
	Member Member
}

// Container is a finalized, ordered, read-only namespace of constants.
// Containers are built by Define and by group evaluation; the zero value is
// an empty namespace with no name.
//
// A finalized container is never mutated and is safe for concurrent reads.
type Container struct {
	name     string
	fullName string
	parent   *Container
	anchor   Constant
	class    reflect.Type
	order    uint64

	items []Item
	index map[string]int
	attrs map[string]any
	meta  map[string]any
}

// Name returns the container's own name.
func (c *Container) Name() string {
	return c.name
}

// FullName returns the dotted path from the root container, e.g. FOO.B.B2.
func (c *Container) FullName() string {
	return c.fullName
}

// Parent returns the enclosing container of a group, or nil for a root.
func (c *Container) Parent() *Container {
	return c.parent
}

// IsGroup reports whether the container was produced from a LazyGroup.
func (c *Container) IsGroup() bool {
	return c.anchor != nil
}

// Anchor returns the constant a group was built from, or nil for a root.
func (c *Container) Anchor() Constant {
	return c.anchor
}

// ConstantClass returns the class of constants the container owns.
func (c *Container) ConstantClass() reflect.Type {
	return c.class
}

// CreationOrder returns the order a group sorts by among its siblings.
// It is zero for root containers.
func (c *Container) CreationOrder() uint64 {
	return c.order
}

// Meta returns a payload field merged into a group by its anchor.
func (c *Container) Meta(key string) (any, bool) {
	v, ok := c.meta[key]
	return v, ok
}

// Attr returns any declared attribute by name, including constants broader
// than the container's class and plain values. Groups are returned as
// *Container.
func (c *Container) Attr(name string) (any, bool) {
	v, ok := c.attrs[name]
	return v, ok
}

func (c *Container) String() string {
	if c.IsGroup() {
		return fmt.Sprintf("<constants group '%s'>", c.fullName)
	}
	return fmt.Sprintf("<constants container '%s'>", c.fullName)
}

// Instantiate always fails: a container is a singleton namespace and is used
// directly, never as a value factory.
func (c *Container) Instantiate() error {
	return fmt.Errorf("%w: %q cannot be instantiated: constant containers are not designed for that",
		ErrContainerMisused, c.String())
}

// Len returns the number of members.
func (c *Container) Len() int {
	return len(c.items)
}

// Contains reports whether name is a member.
func (c *Container) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// HasName is an alias for Contains.
func (c *Container) HasName(name string) bool {
	return c.Contains(name)
}

// Lookup returns the member called name.
func (c *Container) Lookup(name string) (Member, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: constant %q is not present in %q", ErrMissingConstant, name, c.String())
	}
	return c.items[i].Member, nil
}

// MustLookup is Lookup for names known to exist. It panics otherwise.
func (c *Container) MustLookup(name string) Member {
	m, err := c.Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Get returns the member called name, or def when there is none.
func (c *Container) Get(name string, def Member) Member {
	if i, ok := c.index[name]; ok {
		return c.items[i].Member
	}
	return def
}

// Group returns the nested group called name.
func (c *Container) Group(name string) (*Container, bool) {
	g, ok := c.Get(name, nil).(*Container)
	return g, ok
}

// Names returns member names in creation order.
func (c *Container) Names() []string {
	names := make([]string, len(c.items))
	for i, it := range c.items {
		names[i] = it.Name
	}
	return names
}

// IterNames iterates member names in creation order.
func (c *Container) IterNames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, it := range c.items {
			if !yield(it.Name) {
				return
			}
		}
	}
}

// All iterates member names, so ranging over a container matches Contains.
func (c *Container) All() iter.Seq[string] {
	return c.IterNames()
}

// Constants returns members in creation order.
func (c *Container) Constants() []Member {
	members := make([]Member, len(c.items))
	for i, it := range c.items {
		members[i] = it.Member
	}
	return members
}

// IterConstants iterates members in creation order.
func (c *Container) IterConstants() iter.Seq[Member] {
	return func(yield func(Member) bool) {
		for _, it := range c.items {
			if !yield(it.Member) {
				return
			}
		}
	}
}

// Values is an alias for Constants.
func (c *Container) Values() []Member {
	return c.Constants()
}

// IterValues is an alias for IterConstants.
func (c *Container) IterValues() iter.Seq[Member] {
	return c.IterConstants()
}

// Items returns (name, member) pairs in creation order.
func (c *Container) Items() []Item {
	return append([]Item(nil), c.items...)
}

// IterItems iterates (name, member) pairs in creation order.
func (c *Container) IterItems() iter.Seq2[string, Member] {
	return func(yield func(string, Member) bool) {
		for _, it := range c.items {
			if !yield(it.Name, it.Member) {
				return
			}
		}
	}
}

// ToPrimitive renders {"name": name, "items": [...]}. A group starts from its
// anchor's primitive, so payload fields such as value carry over.
func (c *Container) ToPrimitive(ctx context.Context) Primitive {
	items := make([]Primitive, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, it.Member.ToPrimitive(ctx))
	}

	p := Primitive{}
	if c.anchor != nil {
		p = c.anchor.ToPrimitive(ctx)
	}
	p["name"] = c.name
	p["items"] = items
	return p
}
