package constants

import (
	"fmt"
	"slices"
)

// Define builds and finalizes a container called name from attrs.
//
// Lazy groups are evaluated depth first, constants matching the container's
// class are bound to it, and members are ordered by creation order rather
// than by their position in attrs. Any failure aborts the whole definition:
// validation runs over the complete tree before a single constant is bound.
func Define(name string, attrs Attrs, opts ...Option) (*Container, error) {
	s := newSettings(opts)
	b := &binder{
		owners: make(map[*SimpleConstant]*Container),
		groups: make(map[*LazyGroup]bool),
	}

	c := &Container{name: name, fullName: name}
	p, err := b.plan(c, attrs, s)
	if err != nil {
		s.registry.DefinitionFailed(kindOf(err))
		return nil, err
	}
	if err := b.commit(p); err != nil {
		s.registry.DefinitionFailed(kindOf(err))
		return nil, err
	}

	for _, done := range b.committed {
		s.registry.ContainerDefined(done.fullName, len(done.items))
	}
	return c, nil
}

// MustDefine is Define for package-level declarations. It panics on error.
func MustDefine(name string, attrs Attrs, opts ...Option) *Container {
	c, err := Define(name, attrs, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// binder runs one definition: plan validates the whole tree, commit binds it.
type binder struct {
	owners    map[*SimpleConstant]*Container
	groups    map[*LazyGroup]bool
	committed []*Container
}

type plan struct {
	container *Container
	owned     []planned
	broader   []Attr
	attrs     map[string]any
}

type planned struct {
	name     string
	order    uint64
	constant Constant
	group    *plan
	lazy     *LazyGroup
}

func (b *binder) plan(c *Container, attrs Attrs, s *settings) (*plan, error) {
	if err := s.validateClass(c.String()); err != nil {
		return nil, err
	}
	c.class = s.class

	p := &plan{
		container: c,
		attrs:     make(map[string]any, len(attrs)),
	}

	for _, a := range collapse(attrs) {
		switch v := a.Value.(type) {
		case *LazyGroup:
			if v == nil {
				p.attrs[a.Name] = a.Value
				continue
			}
			child, err := b.planGroup(c, a.Name, v)
			if err != nil {
				return nil, err
			}
			p.owned = append(p.owned, planned{
				name:  a.Name,
				order: v.anchor.CreationOrder(),
				group: child,
				lazy:  v,
			})
			p.attrs[a.Name] = child.container

		case Constant:
			if isNilValue(v) {
				p.attrs[a.Name] = a.Value
				continue
			}
			if err := checkBase(v); err != nil {
				return nil, fmt.Errorf("attribute %q of %q: %w", a.Name, c.String(), err)
			}
			p.attrs[a.Name] = v
			if !s.accepts(v) {
				p.broader = append(p.broader, a)
				continue
			}
			if err := b.claim(c, a.Name, v); err != nil {
				return nil, err
			}
			p.owned = append(p.owned, planned{
				name:     a.Name,
				order:    v.CreationOrder(),
				constant: v,
			})

		default:
			p.attrs[a.Name] = a.Value
		}
	}

	slices.SortStableFunc(p.owned, func(x, y planned) int {
		switch {
		case x.order < y.order:
			return -1
		case x.order > y.order:
			return 1
		}
		return 0
	})
	return p, nil
}

func (b *binder) planGroup(parent *Container, name string, g *LazyGroup) (*plan, error) {
	if g.err != nil {
		return nil, fmt.Errorf("attribute %q of %q: %w", name, parent.String(), g.err)
	}
	if g.consumed || b.groups[g] {
		return nil, fmt.Errorf("%w: cannot use it as %q of %q", ErrGroupConsumed, name, parent.String())
	}
	b.groups[g] = true

	child := &Container{
		name:     name,
		fullName: parent.fullName + "." + name,
		parent:   parent,
		anchor:   g.anchor,
		order:    g.anchor.CreationOrder(),
	}
	return b.plan(child, g.attrs, newSettings(g.opts))
}

// claim reserves v for c, rejecting constants owned elsewhere, including
// ones claimed earlier in the same definition.
func (b *binder) claim(c *Container, name string, v Constant) error {
	sc := v.simple()
	owner := sc.container
	if owner == nil {
		owner = b.owners[sc]
	}
	if owner != nil {
		return fmt.Errorf("%w: cannot use %q as value for %q attribute of %q container: already bound to %q",
			ErrConstantAlreadyBound, v.String(), name, c.String(), owner.String())
	}
	b.owners[sc] = c
	return nil
}

func (b *binder) commit(p *plan) error {
	c := p.container
	c.items = make([]Item, 0, len(p.owned))
	c.index = make(map[string]int, len(p.owned))

	for _, m := range p.owned {
		var member Member
		if m.group != nil {
			if err := b.commit(m.group); err != nil {
				return err
			}
			g := m.group.container
			builder := &GroupBuilder{group: g}
			g.anchor.MergeInto(builder)
			builder.done = true
			m.lazy.release()
			member = g
		} else {
			if err := m.constant.simple().bind(c, m.name); err != nil {
				return err
			}
			member = m.constant
		}
		c.index[m.name] = len(c.items)
		c.items = append(c.items, Item{Name: m.name, Member: member})
	}

	// Broader constants learn their name but stay unbound.
	for _, a := range p.broader {
		if sc := a.Value.(Constant).simple(); sc.container == nil {
			sc.name = a.Name
		}
	}

	c.attrs = p.attrs
	b.committed = append(b.committed, c)
	return nil
}

// collapse keeps the last value of a repeated name at the first name's position.
func collapse(attrs Attrs) Attrs {
	pos := make(map[string]int, len(attrs))
	out := make(Attrs, 0, len(attrs))
	for _, a := range attrs {
		if i, ok := pos[a.Name]; ok {
			out[i].Value = a.Value
			continue
		}
		pos[a.Name] = len(out)
		out = append(out, a)
	}
	return out
}
