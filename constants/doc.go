// Package constants provides ordered, enum-like containers of named constants.
//
// A container is declared once, usually at package level, from an ordered
// list of attributes:
//
//	var Status = constants.MustDefine("Status", constants.Attrs{
//	    {"Active", constants.New()},
//	    {"Archived", constants.New()},
//	    {"Review", constants.ToGroup(constants.New(), constants.Attrs{
//	        {"Pending", constants.New()},
//	        {"Rejected", constants.New()},
//	    })},
//	})
//
// Define binds every constant to the container, evaluates nested groups into
// containers of their own and freezes the member list. Members are ordered by
// the moment each constant was created, so the order above is kept even when
// the attributes are listed differently. Status.Review.Pending has the full
// name "Status.Review.Pending".
//
// # Ownership
//
// A constant belongs to at most one container. Declaring a bound constant in
// a second container fails with ErrConstantAlreadyBound, and a LazyGroup can
// be evaluated only once.
//
// # Constant classes
//
// WithConstantClass restricts the constants a container owns. Constants that
// do not match stay reachable through Attr but are not members; their full
// name starts with UnboundContainerName.
//
// # Payloads
//
// Payload constants embed *SimpleConstant and override MergeInto and
// ToPrimitive. See package ext for verbose names, help texts and values.
package constants
