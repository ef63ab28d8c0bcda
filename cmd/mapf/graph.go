package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pdrpinto/mapf"
	"github.com/spf13/cobra"
)

type adjacencyEntry struct {
	Node      mapf.Cell   `json:"node"`
	Neighbors []mapf.Cell `json:"neighbors"`
}

func (app *cli) graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [scenario]",
		Short: "Print the adjacency list built from the scenario grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args)
			if err != nil {
				return err
			}
			entries := adjacency(s.Graph())

			out := cmd.OutOrStdout()
			if app.output == "json" {
				return writeJSON(out, entries)
			}
			for _, entry := range entries {
				neighbors := make([]string, len(entry.Neighbors))
				for i, n := range entry.Neighbors {
					neighbors[i] = n.String()
				}
				fmt.Fprintf(out, "%v: [%s]\n", entry.Node, strings.Join(neighbors, ", "))
			}
			return nil
		},
	}
}

// adjacency lists the graph in row-major order.
func adjacency(graph mapf.AdjacencyGraph[mapf.Cell]) []adjacencyEntry {
	entries := make([]adjacencyEntry, 0, len(graph))
	for node, neighbors := range graph {
		entries = append(entries, adjacencyEntry{Node: node, Neighbors: neighbors})
	}
	slices.SortFunc(entries, func(a, b adjacencyEntry) int {
		if c := cmp.Compare(a.Node.Row, b.Node.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Node.Col, b.Node.Col)
	})
	return entries
}
