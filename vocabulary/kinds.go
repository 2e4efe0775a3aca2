package vocabulary

import (
	"reflect"

	"github.com/c360studio/candv/constants"
	"github.com/c360studio/candv/ext"
)

// Kind names.
const (
	KindSimple       = "simple"
	KindVerbose      = "verbose"
	KindValue        = "value"
	KindVerboseValue = "verbose_value"
)

// Kinds lists the constant kinds a document may use.
var Kinds = constants.MustDefine("Kinds", constants.Attrs{
	{KindSimple, ext.NewVerbose(
		ext.WithVerboseName("Simple"),
		ext.WithHelpText("A named constant without payload"))},
	{KindVerbose, ext.NewVerbose(
		ext.WithVerboseName("Verbose"),
		ext.WithHelpText("A constant with verbose_name and help_text"))},
	{KindValue, ext.NewVerbose(
		ext.WithVerboseName("Value"),
		ext.WithHelpText("A constant with an attached value"))},
	{KindVerboseValue, ext.NewVerbose(
		ext.WithVerboseName("Verbose value"),
		ext.WithHelpText("A constant with value, verbose_name and help_text"))},
})

// classes maps a kind to the constant class of containers declared with it.
var classes = map[string]reflect.Type{
	KindSimple:       constants.BaseClass,
	KindVerbose:      ext.VerboseClass,
	KindValue:        ext.ValuesClass,
	KindVerboseValue: ext.VerboseValuesClass,
}

// newConstant creates an unbound constant of kind from e and its decoded value.
func newConstant(kind string, e *Entry, value any) constants.Constant {
	var opts []ext.VerboseOption
	if e.VerboseName != nil {
		opts = append(opts, ext.WithVerboseName(*e.VerboseName))
	}
	if e.HelpText != nil {
		opts = append(opts, ext.WithHelpText(*e.HelpText))
	}

	switch kind {
	case KindVerbose:
		return ext.NewVerbose(opts...)
	case KindValue:
		return ext.NewValue(value)
	case KindVerboseValue:
		return ext.NewVerboseValue(value, opts...)
	}
	return constants.New()
}
