// Package scenario loads multi-agent problem files.
//
// A scenario names an occupancy grid, the agents moving on it and the solver
// settings. Files ending in .yaml or .yml are read as YAML, files ending in
// .hcl as HCL. Both describe the same model:
//
//	name = "corner swap"
//	rows = ["...", "...", "..."]
//
//	agent "a" {
//	  start = [0, 0]
//	  goal  = [2, 2]
//	}
//
//	solver {
//	  conflict_policy = "yield-to-first"
//	}
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
	"go.uber.org/zap"
)

// Scenario is a validated problem description.
type Scenario struct {
	Name   string
	Grid   grid.Occupancy
	Agents []Agent
	Solver Solver
}

// Agent is one start/goal pair.
type Agent struct {
	Name  string
	Start mapf.Cell
	Goal  mapf.Cell
}

// Solver carries the coordinator settings. Zero values mean library defaults.
type Solver struct {
	Workers        int    `yaml:"workers"`
	MaxRounds      int    `yaml:"max_rounds"`
	TieBreak       string `yaml:"tie_break"`
	ConflictPolicy string `yaml:"conflict_policy"`
	Strict         bool   `yaml:"strict"`
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Load reads a scenario file, picking the decoder from its extension, and
// applies MAPF_WORKERS and MAPF_MAX_ROUNDS environment overrides.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	case ".hcl":
		s, err = ParseHCL(data, path)
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := s.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return s, nil
}

// rawAgent is the decoded form shared by both file formats.
type rawAgent struct {
	name  string
	start []int
	goal  []int
}

func build(name string, cells [][]int, rows []string, agents []rawAgent, solver Solver) (*Scenario, error) {
	occupancy := grid.Occupancy(cells)
	if len(rows) > 0 {
		if len(cells) > 0 {
			return nil, fmt.Errorf("%w: both grid and rows given", ErrInvalid)
		}
		var err error
		occupancy, err = grid.ParseRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if occupancy.Rows() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalid)
	}
	if err := occupancy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(agents) == 0 {
		return nil, fmt.Errorf("%w: no agents", ErrInvalid)
	}

	s := &Scenario{Name: name, Grid: occupancy, Solver: solver}
	for i, raw := range agents {
		agentName := raw.name
		if agentName == "" {
			agentName = fmt.Sprintf("agent-%d", i+1)
		}
		start, err := toCell(raw.start)
		if err != nil {
			return nil, fmt.Errorf("%w: agent %q start: %w", ErrInvalid, agentName, err)
		}
		goal, err := toCell(raw.goal)
		if err != nil {
			return nil, fmt.Errorf("%w: agent %q goal: %w", ErrInvalid, agentName, err)
		}
		s.Agents = append(s.Agents, Agent{Name: agentName, Start: start, Goal: goal})
	}

	if _, err := s.Options(nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return s, nil
}

func toCell(pair []int) (mapf.Cell, error) {
	if len(pair) != 2 {
		return mapf.Cell{}, fmt.Errorf("want [row, col], got %d values", len(pair))
	}
	return mapf.Cell{Row: pair[0], Col: pair[1]}, nil
}

func (s *Scenario) applyEnvOverrides() error {
	for name, target := range map[string]*int{
		"MAPF_WORKERS":    &s.Solver.Workers,
		"MAPF_MAX_ROUNDS": &s.Solver.MaxRounds,
	} {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*target = n
	}
	return nil
}

// Graph converts the grid into the search graph.
func (s *Scenario) Graph() mapf.AdjacencyGraph[mapf.Cell] {
	return s.Grid.Graph()
}

// Starts returns the agents' start cells in order.
func (s *Scenario) Starts() []mapf.Cell {
	starts := make([]mapf.Cell, len(s.Agents))
	for i, agent := range s.Agents {
		starts[i] = agent.Start
	}
	return starts
}

// Goals returns the agents' goal cells in order.
func (s *Scenario) Goals() []mapf.Cell {
	goals := make([]mapf.Cell, len(s.Agents))
	for i, agent := range s.Agents {
		goals[i] = agent.Goal
	}
	return goals
}

// Options translates the solver section into search options. A nil logger
// leaves the library default in place.
func (s *Scenario) Options(logger *zap.Logger) ([]mapf.Option, error) {
	tieBreak, err := mapf.ParseTieBreak(s.Solver.TieBreak)
	if err != nil {
		return nil, err
	}
	policy, err := mapf.ParseConflictPolicy(s.Solver.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	options := []mapf.Option{
		mapf.WithTieBreak(tieBreak),
		mapf.WithConflictPolicy(policy),
	}
	if s.Solver.Workers > 0 {
		options = append(options, mapf.WithWorkers(s.Solver.Workers))
	}
	if s.Solver.MaxRounds > 0 {
		options = append(options, mapf.WithMaxRounds(s.Solver.MaxRounds))
	}
	if s.Solver.Strict {
		options = append(options, mapf.WithStrictNodes())
	}
	if logger != nil {
		options = append(options, mapf.WithLogger(logger))
	}
	return options, nil
}
