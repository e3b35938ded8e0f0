package production

// CreationModeKind names a creation mode in storage and on the wire
type CreationModeKind string

const (
	CreationModeExplicitOrders CreationModeKind = "EXPLICIT_ORDERS"
	CreationModeDateRange      CreationModeKind = "DATE_RANGE"
)

// String returns the string representation of CreationModeKind
func (k CreationModeKind) String() string {
	return string(k)
}

// CreationMode decides how a production order's pivot may grow. It is chosen
// by the constructor and never changes afterwards.
type CreationMode interface {
	Kind() CreationModeKind
	creationMode()
}

// ExplicitOrders is the mode of orders built from a hand-picked list of
// customer orders. Their pivot is frozen at creation.
type ExplicitOrders struct{}

// Kind implements CreationMode
func (ExplicitOrders) Kind() CreationModeKind { return CreationModeExplicitOrders }
func (ExplicitOrders) creationMode()          {}

// DateRange is the mode of orders covering every eligible order in their
// dispatch window. Their pivot is discovered when the first product is attached.
type DateRange struct{}

// Kind implements CreationMode
func (DateRange) Kind() CreationModeKind { return CreationModeDateRange }
func (DateRange) creationMode()          {}

// ParseCreationMode resolves a stored kind
func ParseCreationMode(kind string) (CreationMode, error) {
	switch CreationModeKind(kind) {
	case CreationModeExplicitOrders:
		return ExplicitOrders{}, nil
	case CreationModeDateRange:
		return DateRange{}, nil
	}
	return nil, consistencyError("Unknown creation mode %q", kind)
}
