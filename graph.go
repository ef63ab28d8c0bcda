package mapf

// Graph is generic over node type N.
// N must be comparable so it can be used in maps. Every edge costs one hop.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []NodeType
}

// NodeSet is implemented by graphs that can report membership. Strict mode
// uses it to reject unknown start and goal nodes.
type NodeSet[NodeType comparable] interface {
	Contains(node NodeType) bool
}

// AdjacencyGraph maps each node to its ordered neighbor list. A neighbor that
// is not itself a key has no outgoing edges.
type AdjacencyGraph[NodeType comparable] map[NodeType][]NodeType

// Neighbors returns the neighbors of node in insertion order.
func (g AdjacencyGraph[NodeType]) Neighbors(node NodeType) []NodeType {
	return g[node]
}

// Contains reports whether node is a key of the graph.
func (g AdjacencyGraph[NodeType]) Contains(node NodeType) bool {
	_, ok := g[node]
	return ok
}

// GraphFunc adapts a plain function to the Graph interface.
type GraphFunc[NodeType comparable] func(node NodeType) []NodeType

// Neighbors calls f(node).
func (f GraphFunc[NodeType]) Neighbors(node NodeType) []NodeType {
	return f(node)
}
