package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Name   string      `yaml:"name"`
	Grid   [][]int     `yaml:"grid"`
	Rows   []string    `yaml:"rows"`
	Agents []yamlAgent `yaml:"agents"`
	Solver Solver      `yaml:"solver"`
}

type yamlAgent struct {
	Name  string `yaml:"name"`
	Start []int  `yaml:"start"`
	Goal  []int  `yaml:"goal"`
}

// ParseYAML decodes and validates a YAML scenario.
func ParseYAML(data []byte) (*Scenario, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	agents := make([]rawAgent, 0, len(file.Agents))
	for _, agent := range file.Agents {
		agents = append(agents, rawAgent{name: agent.Name, start: agent.Start, goal: agent.Goal})
	}
	return build(file.Name, file.Grid, file.Rows, agents, file.Solver)
}
