package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cornerSwapYAML = `
name: corner swap
rows:
  - "..."
  - "..."
  - "..."
agents:
  - name: north
    start: [0, 0]
    goal: [2, 2]
  - start: [2, 2]
    goal: [0, 0]
solver:
  workers: 2
  conflict_policy: yield-to-first
  tie_break: last
`

const cornerSwapHCL = `
name = "corner swap"
grid = [
  [free, free, free],
  [free, free, free],
  [free, free, free],
]

agent "north" {
  start = [0, 0]
  goal  = [2, 2]
}

agent "south" {
  start = [2, 2]
  goal  = [0, 0]
}

solver {
  workers         = 2
  conflict_policy = "yield-to-first"
  tie_break       = "last"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	s, err := Load(writeFile(t, "swap.yaml", cornerSwapYAML))
	require.NoError(t, err)

	assert.Equal(t, "corner swap", s.Name)
	assert.Equal(t, grid.Occupancy{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}, s.Grid)
	assert.Equal(t, []Agent{
		{Name: "north", Start: mapf.Cell{Row: 0, Col: 0}, Goal: mapf.Cell{Row: 2, Col: 2}},
		{Name: "agent-2", Start: mapf.Cell{Row: 2, Col: 2}, Goal: mapf.Cell{Row: 0, Col: 0}},
	}, s.Agents)
	assert.Equal(t, Solver{Workers: 2, ConflictPolicy: "yield-to-first", TieBreak: "last"}, s.Solver)
}

func TestLoad_HCL(t *testing.T) {
	s, err := Load(writeFile(t, "swap.hcl", cornerSwapHCL))
	require.NoError(t, err)

	assert.Equal(t, "corner swap", s.Name)
	assert.Equal(t, grid.Occupancy{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}, s.Grid)
	require.Len(t, s.Agents, 2)
	assert.Equal(t, "south", s.Agents[1].Name)
	assert.Equal(t, []mapf.Cell{{Row: 0, Col: 0}, {Row: 2, Col: 2}}, s.Starts())
	assert.Equal(t, []mapf.Cell{{Row: 2, Col: 2}, {Row: 0, Col: 0}}, s.Goals())
	assert.Equal(t, Solver{Workers: 2, ConflictPolicy: "yield-to-first", TieBreak: "last"}, s.Solver)
}

func TestParseHCL_SampleVariable(t *testing.T) {
	s, err := ParseHCL([]byte(`
grid = sample
agent "a" {
  start = [0, 0]
  goal  = [8, 0]
}
`), "sample.hcl")
	require.NoError(t, err)
	assert.Equal(t, grid.Sample(), s.Grid)
	assert.Equal(t, grid.SampleGraph(), s.Graph())
	assert.Equal(t, Solver{}, s.Solver)
}

func TestParseHCL_Errors(t *testing.T) {
	_, err := ParseHCL([]byte(`grid = [[1`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse scenario")

	_, err = ParseHCL([]byte(`
grid = [[1]]
agent "a" {
  start = [0, 0]
}
`), "missing.hcl")
	assert.ErrorContains(t, err, "failed to decode scenario")
}

func TestParseYAML_Validation(t *testing.T) {
	cases := map[string]string{
		"no grid":         "agents: [{start: [0, 0], goal: [0, 0]}]",
		"no agents":       "rows: ['..']",
		"bad cell":        "rows: ['.x']\nagents: [{start: [0, 0], goal: [0, 0]}]",
		"ragged":          "grid: [[1, 1], [1]]\nagents: [{start: [0, 0], goal: [0, 0]}]",
		"both layouts":    "grid: [[1]]\nrows: ['.']\nagents: [{start: [0, 0], goal: [0, 0]}]",
		"short start":     "rows: ['..']\nagents: [{start: [0], goal: [0, 1]}]",
		"bad policy":      "rows: ['..']\nagents: [{start: [0, 0], goal: [0, 1]}]\nsolver: {conflict_policy: wait}",
		"bad tie break":   "rows: ['..']\nagents: [{start: [0, 0], goal: [0, 1]}]\nsolver: {tie_break: middle}",
		"non-binary cell": "grid: [[2]]\nagents: [{start: [0, 0], goal: [0, 0]}]",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAML([]byte(input))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := ParseYAML([]byte("agents: {"))
	assert.ErrorContains(t, err, "failed to parse scenario")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario")

	_, err = Load(writeFile(t, "scenario.json", "{}"))
	assert.ErrorContains(t, err, "unsupported scenario extension")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "swap.yaml", cornerSwapYAML)

	t.Setenv("MAPF_WORKERS", "5")
	t.Setenv("MAPF_MAX_ROUNDS", "40")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Solver.Workers)
	assert.Equal(t, 40, s.Solver.MaxRounds)

	t.Setenv("MAPF_WORKERS", "many")
	_, err = Load(path)
	assert.ErrorContains(t, err, "MAPF_WORKERS")
}

func TestOptions_DriveTheCoordinator(t *testing.T) {
	s, err := ParseYAML([]byte(cornerSwapYAML))
	require.NoError(t, err)
	s.Solver.TieBreak = ""

	options, err := s.Options(nil)
	require.NoError(t, err)

	result, err := mapf.FindPaths(t.Context(), s.Graph(), s.Starts(), s.Goals(), mapf.Manhattan, options...)
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, []int{1}, result.Conflicts[0].Excised)
	assert.True(t, result.Agents[0].Found)
	assert.True(t, result.Agents[1].Found)
}
