package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pdrpinto/mapf/grid"
	"github.com/zclconf/go-cty/cty"
)

type hclFile struct {
	Name   string      `hcl:"name,optional"`
	Grid   [][]int     `hcl:"grid,optional"`
	Rows   []string    `hcl:"rows,optional"`
	Agents []*hclAgent `hcl:"agent,block"`
	Solver *hclSolver  `hcl:"solver,block"`
}

type hclAgent struct {
	Name  string `hcl:"name,label"`
	Start []int  `hcl:"start"`
	Goal  []int  `hcl:"goal"`
}

type hclSolver struct {
	Workers        int    `hcl:"workers,optional"`
	MaxRounds      int    `hcl:"max_rounds,optional"`
	TieBreak       string `hcl:"tie_break,optional"`
	ConflictPolicy string `hcl:"conflict_policy,optional"`
	Strict         bool   `hcl:"strict,optional"`
}

// evalContext exposes the cell constants free and wall, and the sample grid
// as sample, to scenario expressions.
func evalContext() *hcl.EvalContext {
	sample := grid.Sample()
	rows := make([]cty.Value, 0, sample.Rows())
	for _, row := range sample {
		values := make([]cty.Value, 0, len(row))
		for _, v := range row {
			values = append(values, cty.NumberIntVal(int64(v)))
		}
		rows = append(rows, cty.ListVal(values))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"free":   cty.NumberIntVal(grid.Free),
			"wall":   cty.NumberIntVal(grid.Wall),
			"sample": cty.ListVal(rows),
		},
	}
}

// ParseHCL decodes and validates an HCL scenario. filename is only used in
// diagnostics.
func ParseHCL(data []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario: %w", diags)
	}

	var decoded hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario: %w", diags)
	}

	agents := make([]rawAgent, 0, len(decoded.Agents))
	for _, agent := range decoded.Agents {
		agents = append(agents, rawAgent{name: agent.Name, start: agent.Start, goal: agent.Goal})
	}
	var solver Solver
	if decoded.Solver != nil {
		solver = Solver(*decoded.Solver)
	}
	return build(decoded.Name, decoded.Grid, decoded.Rows, agents, solver)
}
