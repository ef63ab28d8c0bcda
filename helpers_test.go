package mapf_test

import (
	"testing"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
	"github.com/stretchr/testify/require"
)

// cells builds a path from row/col pairs.
func cells(pairs ...[2]int) []mapf.Cell {
	out := make([]mapf.Cell, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, mapf.Cell{Row: p[0], Col: p[1]})
	}
	return out
}

func cell(row, col int) mapf.Cell { return mapf.Cell{Row: row, Col: col} }

func mustGraph(t *testing.T, rows ...string) mapf.AdjacencyGraph[mapf.Cell] {
	t.Helper()
	occupancy, err := grid.ParseRows(rows)
	require.NoError(t, err)
	return occupancy.Graph()
}

// bfsDistance is the reference hop distance, -1 when unreachable.
func bfsDistance[N comparable](graph mapf.Graph[N], start, goal N) int {
	distance := map[N]int{start: 0}
	queue := []N{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return distance[current]
		}
		for _, next := range graph.Neighbors(current) {
			if _, seen := distance[next]; !seen {
				distance[next] = distance[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return -1
}

// requireWalkable checks path starts at start, ends at goal and only follows
// edges of graph.
func requireWalkable[N comparable](t *testing.T, graph mapf.Graph[N], path []N, start, goal N) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, start, path[0])
	require.Equal(t, goal, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		require.Contains(t, graph.Neighbors(path[i-1]), path[i], "hop %d: %v -> %v", i, path[i-1], path[i])
	}
}
