package constants

import (
	"fmt"
	"reflect"
)

// LazyGroup is a deferred sub-container. It is inert until the enclosing
// Define evaluates it, and it can be evaluated only once.
type LazyGroup struct {
	anchor   Constant
	attrs    Attrs
	opts     []Option
	err      error
	consumed bool
}

// NewGroup builds a group anchored on anchor. Every attribute value must be a
// Constant or a *LazyGroup. The anchor is not modified and may be unbound.
func NewGroup(anchor Constant, attrs Attrs, opts ...Option) (*LazyGroup, error) {
	g := ToGroup(anchor, attrs, opts...)
	if g.err != nil {
		return nil, g.err
	}
	return g, nil
}

// ToGroup is NewGroup for use inside an Attrs literal. A validation error is
// kept on the group and returned by the Define that declares it.
func ToGroup(anchor Constant, attrs Attrs, opts ...Option) *LazyGroup {
	g := &LazyGroup{
		anchor: anchor,
		attrs:  append(Attrs(nil), attrs...),
		opts:   append([]Option(nil), opts...),
	}
	g.err = g.validate()
	return g
}

func (g *LazyGroup) validate() error {
	if isNilValue(g.anchor) {
		return fmt.Errorf("%w: group anchor must be a constant", ErrInvalidGroupMember)
	}
	if err := checkBase(g.anchor); err != nil {
		return fmt.Errorf("group anchor: %w", err)
	}
	for _, a := range g.attrs {
		switch v := a.Value.(type) {
		case *LazyGroup:
			if v != nil {
				continue
			}
		case Constant:
			if isNilValue(v) {
				break
			}
			if err := checkBase(v); err != nil {
				return fmt.Errorf("attribute %q: %w", a.Name, err)
			}
			continue
		}
		return fmt.Errorf("%w: %q (%v): only instances of %q or other groups are allowed",
			ErrInvalidGroupMember, a.Name, a.Value, constantType.String())
	}
	owner := fmt.Sprintf("group anchored on %s", g.anchor)
	return newSettings(g.opts).validateClass(owner)
}

// Anchor returns the constant the group was built from, or nil once evaluated.
func (g *LazyGroup) Anchor() Constant {
	return g.anchor
}

// Consumed reports whether the group has been evaluated.
func (g *LazyGroup) Consumed() bool {
	return g.consumed
}

// release drops the descriptor state after evaluation.
func (g *LazyGroup) release() {
	g.anchor = nil
	g.attrs = nil
	g.opts = nil
	g.consumed = true
}

// GroupBuilder gives an anchor constant write access to the group being
// created. It is valid only for the duration of MergeInto.
type GroupBuilder struct {
	group *Container
	done  bool
}

// Group returns the group under construction.
func (b *GroupBuilder) Group() *Container {
	return b.group
}

// SetCreationOrder sets the order the group sorts by among its siblings.
func (b *GroupBuilder) SetCreationOrder(order uint64) {
	b.check()
	b.group.order = order
}

// SetMeta attaches a payload field to the group.
func (b *GroupBuilder) SetMeta(key string, value any) {
	b.check()
	if b.group.meta == nil {
		b.group.meta = make(map[string]any)
	}
	b.group.meta[key] = value
}

func (b *GroupBuilder) check() {
	if b.done {
		panic("constants: GroupBuilder used after " + b.group.String() + " was finalized")
	}
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
