package ext

import (
	"context"

	"github.com/c360studio/candv/constants"
)

// Group metadata keys set by payload constants.
const (
	MetaValue       = "value"
	MetaVerboseName = "verbose_name"
	MetaHelpText    = "help_text"
)

// Verbosed is a constant with a verbose name and a help text.
type Verbosed interface {
	constants.Constant
	VerboseName() string
	HelpText() string
}

// VerboseOption sets an optional verbose field.
type VerboseOption func(*verbose)

// WithVerboseName sets a human-readable name.
func WithVerboseName(name string) VerboseOption {
	return func(v *verbose) {
		v.verboseName = &name
	}
}

// WithHelpText sets a description.
func WithHelpText(text string) VerboseOption {
	return func(v *verbose) {
		v.helpText = &text
	}
}

// verbose holds the optional fields; nil means unset and renders as null.
type verbose struct {
	verboseName *string
	helpText    *string
}

func newVerbose(opts []VerboseOption) verbose {
	var v verbose
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// VerboseName returns the verbose name, empty when unset.
func (v *verbose) VerboseName() string {
	if v.verboseName == nil {
		return ""
	}
	return *v.verboseName
}

// HelpText returns the help text, empty when unset.
func (v *verbose) HelpText() string {
	if v.helpText == nil {
		return ""
	}
	return *v.helpText
}

func (v *verbose) mergeInto(g *constants.GroupBuilder) {
	g.SetMeta(MetaVerboseName, optional(v.verboseName))
	g.SetMeta(MetaHelpText, optional(v.helpText))
}

func (v *verbose) fill(p constants.Primitive) {
	p[MetaVerboseName] = optional(v.verboseName)
	p[MetaHelpText] = optional(v.helpText)
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// VerboseConstant is a constant with an optional verbose name and help text.
type VerboseConstant struct {
	*constants.SimpleConstant
	verbose
}

// NewVerbose creates an unbound verbose constant.
func NewVerbose(opts ...VerboseOption) *VerboseConstant {
	return &VerboseConstant{
		SimpleConstant: constants.New(),
		verbose:        newVerbose(opts),
	}
}

// MergeInto adds verbose_name and help_text to the group.
func (c *VerboseConstant) MergeInto(g *constants.GroupBuilder) {
	c.SimpleConstant.MergeInto(g)
	c.verbose.mergeInto(g)
}

// ToPrimitive adds verbose_name and help_text to the base primitive.
func (c *VerboseConstant) ToPrimitive(ctx context.Context) constants.Primitive {
	p := c.SimpleConstant.ToPrimitive(ctx)
	c.verbose.fill(p)
	return p
}

// GroupVerboseName returns the verbose name merged into a group.
func GroupVerboseName(g *constants.Container) string {
	s, _ := metaString(g, MetaVerboseName)
	return s
}

// GroupHelpText returns the help text merged into a group.
func GroupHelpText(g *constants.Container) string {
	s, _ := metaString(g, MetaHelpText)
	return s
}

func metaString(g *constants.Container, key string) (string, bool) {
	v, ok := g.Meta(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
