package ext

import (
	"context"
	"encoding"
	"fmt"
	"time"

	"github.com/c360studio/candv/constants"
)

// Valued is a constant carrying an arbitrary value.
type Valued interface {
	constants.Constant
	Value() any
}

// ValuePrimitiver lets a value choose its own primitive form.
type ValuePrimitiver interface {
	PrimitiveValue(ctx context.Context) any
}

// ValueConstant is a constant with an attached value.
type ValueConstant struct {
	*constants.SimpleConstant
	value any
}

// NewValue creates an unbound constant holding value.
func NewValue(value any) *ValueConstant {
	return &ValueConstant{
		SimpleConstant: constants.New(),
		value:          value,
	}
}

// Value returns the attached value.
func (c *ValueConstant) Value() any {
	return c.value
}

// MergeInto adds the value to the group.
func (c *ValueConstant) MergeInto(g *constants.GroupBuilder) {
	c.SimpleConstant.MergeInto(g)
	g.SetMeta(MetaValue, c.value)
}

// ToPrimitive adds the value, converted by PrimitiveValue, to the base primitive.
func (c *ValueConstant) ToPrimitive(ctx context.Context) constants.Primitive {
	p := c.SimpleConstant.ToPrimitive(ctx)
	p[MetaValue] = PrimitiveValue(ctx, c.value)
	return p
}

// VerboseValueConstant has a value, a verbose name and a help text.
type VerboseValueConstant struct {
	*ValueConstant
	verbose
}

// NewVerboseValue creates an unbound constant holding value.
func NewVerboseValue(value any, opts ...VerboseOption) *VerboseValueConstant {
	return &VerboseValueConstant{
		ValueConstant: NewValue(value),
		verbose:       newVerbose(opts),
	}
}

// MergeInto adds value, verbose_name and help_text to the group.
func (c *VerboseValueConstant) MergeInto(g *constants.GroupBuilder) {
	c.ValueConstant.MergeInto(g)
	c.verbose.mergeInto(g)
}

// ToPrimitive adds value, verbose_name and help_text to the base primitive.
func (c *VerboseValueConstant) ToPrimitive(ctx context.Context) constants.Primitive {
	p := c.ValueConstant.ToPrimitive(ctx)
	c.verbose.fill(p)
	return p
}

// GroupValue returns the value merged into a group.
func GroupValue(g *constants.Container) (any, bool) {
	return g.Meta(MetaValue)
}

// PrimitiveValue converts a payload value to its primitive form:
//   - time.Time becomes an RFC 3339 string with its clock, even at midnight
//   - ValuePrimitiver and constants.Primitiver values render themselves
//     (Date renders as YYYY-MM-DD)
//   - encoding.TextMarshaler values (uuid.UUID, net.IP) become their text
//   - func() any is called
//
// Anything else is returned as is.
func PrimitiveValue(ctx context.Context, value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case ValuePrimitiver:
		return v.PrimitiveValue(ctx)
	case constants.Primitiver:
		return v.ToPrimitive(ctx)
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return value
		}
		return string(text)
	case func() any:
		return v()
	}
	return value
}

// Date is a calendar day without a clock or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// PrimitiveValue renders d as YYYY-MM-DD.
func (d Date) PrimitiveValue(_ context.Context) any {
	return d.String()
}
