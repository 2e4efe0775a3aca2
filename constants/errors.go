package constants

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by definition and lookup.
// Every error returned by this package wraps exactly one of them.
var (
	// ErrInvalidConstantClass is returned when a container declares a
	// constant class that does not implement Constant.
	ErrInvalidConstantClass = errors.New("invalid constant class")

	// ErrConstantAlreadyBound is returned when a constant owned by one
	// container is declared as a member of another.
	ErrConstantAlreadyBound = errors.New("constant already bound")

	// ErrInvalidGroupMember is returned when a group member is neither a
	// Constant nor a LazyGroup.
	ErrInvalidGroupMember = errors.New("invalid group member")

	// ErrUninitializedConstant is returned when a constant's embedded
	// *SimpleConstant is nil. It is a kind of ErrInvalidGroupMember.
	ErrUninitializedConstant = fmt.Errorf("%w: constant has no base", ErrInvalidGroupMember)

	// ErrMissingConstant is returned by strict lookups of absent names.
	ErrMissingConstant = errors.New("missing constant")

	// ErrContainerMisused is returned when a container is instantiated.
	ErrContainerMisused = errors.New("container misused")

	// ErrGroupConsumed is returned when a LazyGroup is evaluated a second
	// time. It is a kind of ErrInvalidGroupMember.
	ErrGroupConsumed = fmt.Errorf("%w: group already evaluated", ErrInvalidGroupMember)
)

// errorKinds maps each kind to its metric label.
var errorKinds = []struct {
	err   error
	label string
}{
	{ErrInvalidConstantClass, "invalid_constant_class"},
	{ErrConstantAlreadyBound, "constant_already_bound"},
	{ErrInvalidGroupMember, "invalid_group_member"},
	{ErrMissingConstant, "missing_constant"},
	{ErrContainerMisused, "container_misused"},
}

// kindOf returns the metric label for err.
func kindOf(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "unknown"
}
