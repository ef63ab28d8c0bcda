// Package render draws grids, paths and coordinator diagnostics for a
// terminal. Colors are only emitted when the destination supports them.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
)

var palette = []lipgloss.Color{"9", "10", "12", "11", "13", "14", "208", "141", "45"}

const (
	wallGlyph    = "#"
	freeGlyph    = "."
	overlapGlyph = "*"
)

// Renderer formats output for one destination writer.
type Renderer struct {
	wall    lipgloss.Style
	free    lipgloss.Style
	overlap lipgloss.Style
	title   lipgloss.Style
	agents  []lipgloss.Style
}

// New creates a Renderer whose color profile matches w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	renderer := &Renderer{
		wall:    r.NewStyle().Foreground(lipgloss.Color("240")),
		free:    r.NewStyle().Faint(true),
		overlap: r.NewStyle().Bold(true).Reverse(true),
		title:   r.NewStyle().Bold(true).Underline(true),
	}
	for _, color := range palette {
		renderer.agents = append(renderer.agents, r.NewStyle().Foreground(color).Bold(true))
	}
	return renderer
}

func (r *Renderer) agentStyle(i int) lipgloss.Style {
	return r.agents[i%len(r.agents)]
}

// agentGlyph labels agent i with 1-9 then a-z.
func agentGlyph(i int) string {
	const glyphs = "123456789abcdefghijklmnopqrstuvwxyz"
	return string(glyphs[i%len(glyphs)])
}

// Map draws the grid with every agent's path. A cell on more than one path
// is drawn as '*'.
func (r *Renderer) Map(occupancy grid.Occupancy, paths [][]mapf.Cell) string {
	owners := make(map[mapf.Cell][]int)
	for i, path := range paths {
		for _, cell := range path {
			list := owners[cell]
			if len(list) == 0 || list[len(list)-1] != i {
				owners[cell] = append(list, i)
			}
		}
	}

	var b strings.Builder
	for row := 0; row < occupancy.Rows(); row++ {
		cellsOut := make([]string, 0, len(occupancy[row]))
		for col := range occupancy[row] {
			cell := mapf.Cell{Row: row, Col: col}
			switch agents := owners[cell]; {
			case len(agents) > 1:
				cellsOut = append(cellsOut, r.overlap.Render(overlapGlyph))
			case len(agents) == 1:
				cellsOut = append(cellsOut, r.agentStyle(agents[0]).Render(agentGlyph(agents[0])))
			case occupancy.Free(cell):
				cellsOut = append(cellsOut, r.free.Render(freeGlyph))
			default:
				cellsOut = append(cellsOut, r.wall.Render(wallGlyph))
			}
		}
		b.WriteString(strings.Join(cellsOut, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Paths lists each agent's path, or "no path".
func (r *Renderer) Paths(names []string, result mapf.MultiResult[mapf.Cell]) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Paths"))
	b.WriteByte('\n')
	for i, agent := range result.Agents {
		name := fmt.Sprintf("agent-%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		label := r.agentStyle(i).Render(agentGlyph(i) + " " + name)
		if !agent.Found {
			fmt.Fprintf(&b, "%s %v -> %v: no path (expanded %d, excised %d)\n",
				label, agent.Start, agent.Goal, agent.ExpandedNodes, agent.ExcisedNodes)
			continue
		}
		fmt.Fprintf(&b, "%s %v -> %v: %d hops %s\n",
			label, agent.Start, agent.Goal, len(agent.Path)-1, joinCells(agent.Path))
	}
	return b.String()
}

// Conflicts lists every conflict of a run.
func (r *Renderer) Conflicts(conflicts []mapf.Conflict[mapf.Cell]) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Conflicts"))
	b.WriteByte('\n')
	if len(conflicts) == 0 {
		b.WriteString("none\n")
		return b.String()
	}
	for _, conflict := range conflicts {
		fmt.Fprintf(&b, "round %d at %v: agents %v, excised %v\n",
			conflict.Round, conflict.Node, oneBased(conflict.Agents), oneBased(conflict.Excised))
	}
	return b.String()
}

// Trace prints one line per free cell, in row-major order, with the
// predecessors recorded for it. Cells no agent relaxed print as [].
func (r *Renderer) Trace(occupancy grid.Occupancy, trace *mapf.ConstraintTrace[mapf.Cell]) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Constraint Tree"))
	b.WriteByte('\n')
	for _, entry := range trace.EntriesFor(occupancy.FreeCells()) {
		fmt.Fprintf(&b, "Node %v: [%s]\n", entry.Node, strings.Join(cellStrings(entry.Predecessors), ", "))
	}
	return b.String()
}

func joinCells(path []mapf.Cell) string {
	return strings.Join(cellStrings(path), " ")
}

func cellStrings(path []mapf.Cell) []string {
	out := make([]string, len(path))
	for i, cell := range path {
		out[i] = cell.String()
	}
	return out
}

func oneBased(agents []int) []int {
	out := make([]int, len(agents))
	for i, agent := range agents {
		out[i] = agent + 1
	}
	return out
}
