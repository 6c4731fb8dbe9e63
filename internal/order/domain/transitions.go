package domain

// ValidTransitions is the order state machine. Terminal states map to an
// empty set.
var ValidTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusServed},
	StatusServed:    {StatusPaid},
	StatusPaid:      {},
	StatusCancelled: {},
}

// statusAliases maps status names written by older releases onto the current
// vocabulary. Applied before any table lookup.
var statusAliases = map[Status]Status{
	StatusCreated:       StatusPending,
	StatusSentToKitchen: StatusConfirmed,
}

// Normalize resolves legacy aliases to the current status name.
func Normalize(s Status) Status {
	if mapped, ok := statusAliases[s]; ok {
		return mapped
	}
	return s
}

// IsValidStatusTransition reports whether old -> new is a legal transition.
// Unknown old statuses are never a legal source.
func IsValidStatusTransition(oldStatus, newStatus Status) bool {
	next, ok := ValidTransitions[Normalize(oldStatus)]
	if !ok {
		return false
	}
	target := Normalize(newStatus)
	for _, s := range next {
		if s == target {
			return true
		}
	}
	return false
}

// IsOrderImmutable reports whether an order may no longer be mutated in any
// way, item edits included.
func IsOrderImmutable(status Status) bool {
	normalized := Normalize(status)
	return normalized == StatusPaid || normalized == StatusCancelled
}
