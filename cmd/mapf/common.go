package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
	"github.com/pdrpinto/mapf/internal/scenario"
)

// sampleScenario is the two-agent demonstration on the sample grid.
func sampleScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name: "sample",
		Grid: grid.Sample(),
		Agents: []scenario.Agent{
			{Name: "agent-1", Start: mapf.Cell{Row: 0, Col: 0}, Goal: mapf.Cell{Row: 8, Col: 0}},
			{Name: "agent-2", Start: mapf.Cell{Row: 1, Col: 0}, Goal: mapf.Cell{Row: 4, Col: 6}},
		},
	}
}

func loadScenario(args []string) (*scenario.Scenario, error) {
	if len(args) == 0 {
		return sampleScenario(), nil
	}
	return scenario.Load(args[0])
}

// parseCell reads "row,col".
func parseCell(s string) (mapf.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return mapf.Cell{}, fmt.Errorf("invalid cell %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return mapf.Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return mapf.Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return mapf.Cell{Row: row, Col: col}, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
