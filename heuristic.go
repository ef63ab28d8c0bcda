package mapf

import "fmt"

// Heuristic returns the estimated hop count from node a to node b. It must
// never overestimate for the search to return shortest paths.
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) int

// Cell is a grid coordinate.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan is admissible and consistent on 4-connected unit-cost grids.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// Zero turns A* into uniform-cost search. Use it for graphs where no
// admissible estimate is known.
func Zero[NodeType comparable](NodeType, NodeType) int {
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
