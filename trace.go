package mapf

// ConstraintTrace is the relaxation history of a coordinator run: for each
// node, every predecessor any agent recorded for it, in order. Nodes are
// listed in the order they were first recorded.
//
// A ConstraintTrace is not safe for concurrent writes; the coordinator only
// records into it after the round barrier.
type ConstraintTrace[NodeType comparable] struct {
	order        []NodeType
	predecessors map[NodeType][]NodeType
}

// TraceEntry is one node of a ConstraintTrace with its predecessors.
type TraceEntry[NodeType comparable] struct {
	Node         NodeType   `json:"node"`
	Predecessors []NodeType `json:"predecessors"`
}

// NewConstraintTrace returns an empty trace.
func NewConstraintTrace[NodeType comparable]() *ConstraintTrace[NodeType] {
	return &ConstraintTrace[NodeType]{predecessors: make(map[NodeType][]NodeType)}
}

// Record appends from to the predecessor history of node.
func (t *ConstraintTrace[NodeType]) Record(node, from NodeType) {
	history, seen := t.predecessors[node]
	if !seen {
		t.order = append(t.order, node)
	}
	t.predecessors[node] = append(history, from)
}

// Predecessors returns a copy of the history recorded for node.
func (t *ConstraintTrace[NodeType]) Predecessors(node NodeType) []NodeType {
	return append([]NodeType(nil), t.predecessors[node]...)
}

// Nodes returns every recorded node in first-record order.
func (t *ConstraintTrace[NodeType]) Nodes() []NodeType {
	return append([]NodeType(nil), t.order...)
}

// Len returns the number of distinct nodes recorded.
func (t *ConstraintTrace[NodeType]) Len() int { return len(t.order) }

// EntriesFor returns one entry per node in the given order. Nodes that were
// never relaxed get an empty predecessor list.
func (t *ConstraintTrace[NodeType]) EntriesFor(nodes []NodeType) []TraceEntry[NodeType] {
	entries := make([]TraceEntry[NodeType], 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, TraceEntry[NodeType]{
			Node:         node,
			Predecessors: append([]NodeType{}, t.predecessors[node]...),
		})
	}
	return entries
}

// Entries returns the trace as a slice, suitable for encoding.
func (t *ConstraintTrace[NodeType]) Entries() []TraceEntry[NodeType] {
	entries := make([]TraceEntry[NodeType], 0, len(t.order))
	for _, node := range t.order {
		entries = append(entries, TraceEntry[NodeType]{Node: node, Predecessors: t.Predecessors(node)})
	}
	return entries
}
