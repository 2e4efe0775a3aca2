package constants

import "context"

// Primitive is the plain-map rendering of a constant or container.
//
//	constant  -> {"name": <string>, ...payload fields...}
//	container -> {"name": <string>, "items": [<primitive>, ...]}
type Primitive map[string]any

// Primitiver is implemented by anything that renders itself as a Primitive.
// Constants and containers both do; payload values may as well.
type Primitiver interface {
	ToPrimitive(ctx context.Context) Primitive
}

// Items returns the nested item primitives, or nil for a leaf.
func (p Primitive) Items() []Primitive {
	items, _ := p["items"].([]Primitive)
	return items
}
