package domain

// PredecessorEdge is a directed scheduling constraint owned by the dependent
// item: ItemID's dates depend on PredecessorID's dates. An item may depend on
// a given predecessor at most once.
type PredecessorEdge struct {
	ItemID        string
	PredecessorID string
	Type          DependencyType

	// LagDays is a signed day offset applied by the type rule;
	// negative lag is lead time.
	LagDays int
}
