package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridorYAML = `
name: corridor
rows: ["..."]
agents:
  - name: left
    start: [0, 0]
    goal: [0, 2]
  - name: right
    start: [0, 2]
    goal: [0, 0]
`

const elbowYAML = `
name: elbow
rows:
  - ".#"
  - ".."
agents:
  - start: [0, 0]
    goal: [1, 1]
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestSolve_Text(t *testing.T) {
	path := writeScenario(t, "corridor.yaml", corridorYAML)

	out, err := execute(t, "solve", "--trace", path)
	require.NoError(t, err)

	want := "corridor: 2 agents, 2 rounds\n\n" +
		". . .\n\n" +
		"Paths\n" +
		"1 left (0,0) -> (0,2): no path (expanded 1, excised 1)\n" +
		"2 right (0,2) -> (0,0): no path (expanded 1, excised 1)\n\n" +
		"Conflicts\n" +
		"round 2 at (0,1): agents [1 2], excised [1 2]\n\n" +
		"Constraint Tree\n" +
		"Node (0,0): []\n" +
		"Node (0,1): [(0,0), (0,2)]\n" +
		"Node (0,2): []\n"
	assert.Equal(t, want, out)
}

func TestSolve_JSON(t *testing.T) {
	path := writeScenario(t, "corridor.yaml", corridorYAML)

	out, err := execute(t, "solve", "--output", "json", "--trace", path)
	require.NoError(t, err)

	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "corridor", report.Scenario)
	assert.Equal(t, []string{"left", "right"}, report.Names)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Rounds)
	assert.True(t, report.Complete)
	require.Len(t, report.Agents, 2)
	for _, agent := range report.Agents {
		assert.False(t, agent.Found)
		assert.Empty(t, agent.Path)
	}
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, mapf.Cell{Row: 0, Col: 1}, report.Conflicts[0].Node)
	assert.Equal(t, []int{0, 1}, report.Conflicts[0].Excised)
	require.Len(t, report.Trace, 3)
	assert.Equal(t, mapf.Cell{Row: 0, Col: 0}, report.Trace[0].Node)
	assert.Empty(t, report.Trace[0].Predecessors)
	assert.Equal(t, []mapf.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 2}}, report.Trace[1].Predecessors)
}

func TestSolve_SampleByDefault(t *testing.T) {
	out, err := execute(t, "solve", "-o", "json")
	require.NoError(t, err)

	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "sample", report.Scenario)
	assert.Equal(t, 39, report.Rounds)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, 31, report.Conflicts[0].Round)
	for _, agent := range report.Agents {
		assert.True(t, agent.Found)
		assert.Less(t, agent.FoundRound, report.Conflicts[0].Round)
	}
}

func TestSolve_RoundLimit(t *testing.T) {
	t.Setenv("MAPF_MAX_ROUNDS", "3")
	path := writeScenario(t, "corridor.yaml", `
rows: ["........"]
agents:
  - start: [0, 0]
    goal: [0, 7]
`)

	out, err := execute(t, "solve", "-o", "json", path)
	require.ErrorIs(t, err, mapf.ErrRoundLimit)

	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Complete)
	assert.Equal(t, 3, report.Rounds)
}

func TestPath_Text(t *testing.T) {
	path := writeScenario(t, "elbow.yaml", elbowYAML)

	out, err := execute(t, "path", path)
	require.NoError(t, err)
	assert.Equal(t, "1 #\n1 1\n(0,0) -> (1,1): 2 hops, expanded 3\n", out)
}

func TestPath_JSONOnSample(t *testing.T) {
	out, err := execute(t, "path", "--from", "0,0", "--to", "3, 4", "-o", "json")
	require.NoError(t, err)

	var report pathReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Found)
	assert.Equal(t, 9, report.TotalCost)
	assert.Equal(t, 15, report.ExpandedNodes)
	require.Len(t, report.Path, 10)
	assert.Equal(t, mapf.Cell{Row: 0, Col: 0}, report.Path[0])
	assert.Equal(t, mapf.Cell{Row: 3, Col: 4}, report.Path[9])
}

func TestPath_NotFound(t *testing.T) {
	path := writeScenario(t, "split.yaml", `
rows: [".#."]
agents:
  - start: [0, 0]
    goal: [0, 2]
`)

	out, err := execute(t, "path", path)
	require.NoError(t, err)
	assert.Equal(t, "no path from (0,0) to (0,2) (expanded 1)\n", out)
}

func TestPath_Strict(t *testing.T) {
	path := writeScenario(t, "elbow.yaml", elbowYAML)

	_, err := execute(t, "path", "--strict", "--to", "0,1", path)
	require.ErrorIs(t, err, mapf.ErrUnknownNode)
}

func TestGraph_Text(t *testing.T) {
	path := writeScenario(t, "elbow.yaml", elbowYAML)

	out, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.Equal(t, "(0,0): [(1,0)]\n(1,0): [(0,0), (1,1)]\n(1,1): [(1,0)]\n", out)
}

func TestGraph_JSONMatchesSample(t *testing.T) {
	out, err := execute(t, "graph", "-o", "json")
	require.NoError(t, err)

	var entries []adjacencyEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))

	got := make(mapf.AdjacencyGraph[mapf.Cell], len(entries))
	for _, entry := range entries {
		got[entry.Node] = entry.Neighbors
	}
	if diff := cmp.Diff(grid.SampleGraph(), got); diff != "" {
		t.Errorf("graph mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCell(t *testing.T) {
	cell, err := parseCell(" 2, 5")
	require.NoError(t, err)
	assert.Equal(t, mapf.Cell{Row: 2, Col: 5}, cell)

	for _, input := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := parseCell(input)
		assert.Error(t, err, input)
	}
}

func TestRoot_InvalidFlags(t *testing.T) {
	_, err := execute(t, "graph", "-o", "yaml")
	require.ErrorContains(t, err, "invalid output")

	_, err = execute(t, "graph", "--log-level", "loud")
	require.Error(t, err)
}
