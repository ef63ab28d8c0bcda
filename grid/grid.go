// Package grid converts occupancy grids into mapf adjacency graphs.
//
// An occupancy grid is a row-major matrix where 1 marks a free cell and 0 a
// wall. Free cells are joined to their free 4-neighbours in the order up,
// down, left, right, which fixes the neighbor order the searches see.
package grid

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/mapf"
)

const (
	Wall = 0
	Free = 1
)

// ErrRagged is returned when the rows of a grid differ in length.
var ErrRagged = errors.New("grid: rows differ in length")

// Occupancy is a row-major grid of Free and Wall values.
type Occupancy [][]int

// Rows returns the number of rows.
func (o Occupancy) Rows() int { return len(o) }

// Cols returns the number of columns, or 0 for an empty grid.
func (o Occupancy) Cols() int {
	if len(o) == 0 {
		return 0
	}
	return len(o[0])
}

// Free reports whether cell is inside the grid and not a wall.
func (o Occupancy) Free(cell mapf.Cell) bool {
	if cell.Row < 0 || cell.Row >= len(o) {
		return false
	}
	row := o[cell.Row]
	return cell.Col >= 0 && cell.Col < len(row) && row[cell.Col] == Free
}

// FreeCells lists the free cells in row-major order, the key order of the
// graph returned by Graph.
func (o Occupancy) FreeCells() []mapf.Cell {
	var cells []mapf.Cell
	for i, row := range o {
		for j, v := range row {
			if v == Free {
				cells = append(cells, mapf.Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// Validate checks the grid is rectangular and holds only Free and Wall.
func (o Occupancy) Validate() error {
	for i, row := range o {
		if len(row) != o.Cols() {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, i, len(row), o.Cols())
		}
		for j, v := range row {
			if v != Free && v != Wall {
				return fmt.Errorf("grid: cell (%d,%d) has value %d, want %d or %d", i, j, v, Wall, Free)
			}
		}
	}
	return nil
}

// Graph builds the adjacency graph of the free cells. Isolated free cells
// are kept with an empty neighbor list.
func (o Occupancy) Graph() mapf.AdjacencyGraph[mapf.Cell] {
	graph := make(mapf.AdjacencyGraph[mapf.Cell])
	for i, row := range o {
		for j, v := range row {
			if v != Free {
				continue
			}
			cell := mapf.Cell{Row: i, Col: j}
			neighbors := []mapf.Cell{}
			for _, next := range []mapf.Cell{
				{Row: i - 1, Col: j},
				{Row: i + 1, Col: j},
				{Row: i, Col: j - 1},
				{Row: i, Col: j + 1},
			} {
				if o.Free(next) {
					neighbors = append(neighbors, next)
				}
			}
			graph[cell] = neighbors
		}
	}
	return graph
}

// ParseRows reads a grid drawn as strings. '1' and '.' are free, '0' and
// '#' are walls.
func ParseRows(rows []string) (Occupancy, error) {
	occupancy := make(Occupancy, len(rows))
	for i, line := range rows {
		row := make([]int, 0, len(line))
		for j, r := range line {
			switch r {
			case '1', '.':
				row = append(row, Free)
			case '0', '#':
				row = append(row, Wall)
			default:
				return nil, fmt.Errorf("grid: row %d column %d: unexpected %q", i, j, r)
			}
		}
		occupancy[i] = row
	}
	if err := occupancy.Validate(); err != nil {
		return nil, err
	}
	return occupancy, nil
}

// Sample returns the 9x10 demonstration grid.
func Sample() Occupancy {
	return Occupancy{
		{1, 0, 1, 1, 1, 1, 0, 1, 1, 1},
		{1, 1, 1, 0, 1, 1, 1, 0, 1, 1},
		{1, 1, 1, 0, 1, 1, 0, 1, 0, 1},
		{0, 0, 1, 0, 1, 0, 0, 0, 0, 1},
		{1, 1, 1, 0, 1, 1, 1, 0, 1, 0},
		{1, 0, 1, 1, 1, 1, 0, 1, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		{1, 0, 1, 1, 1, 1, 0, 1, 1, 1},
		{1, 1, 1, 0, 0, 0, 1, 0, 0, 1},
	}
}

// SampleGraph returns Sample().Graph().
func SampleGraph() mapf.AdjacencyGraph[mapf.Cell] {
	return Sample().Graph()
}
