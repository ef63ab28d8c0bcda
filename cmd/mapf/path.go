package main

import (
	"fmt"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/internal/render"
	"github.com/spf13/cobra"
)

type pathReport struct {
	Start         mapf.Cell   `json:"start"`
	Goal          mapf.Cell   `json:"goal"`
	Found         bool        `json:"found"`
	Path          []mapf.Cell `json:"path"`
	TotalCost     int         `json:"total_cost"`
	ExpandedNodes int         `json:"expanded_nodes"`
}

func (app *cli) pathCmd() *cobra.Command {
	var from, to string
	var strict bool

	cmd := &cobra.Command{
		Use:   "path [scenario]",
		Short: "Find a single-agent shortest path",
		Long: `Runs A* for one agent. --from and --to default to the first agent of the
scenario.`,
		Example: `  mapf path --from 0,0 --to 3,4`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args)
			if err != nil {
				return err
			}
			start, goal := s.Agents[0].Start, s.Agents[0].Goal
			if from != "" {
				if start, err = parseCell(from); err != nil {
					return err
				}
			}
			if to != "" {
				if goal, err = parseCell(to); err != nil {
					return err
				}
			}

			options := []mapf.Option{mapf.WithLogger(app.logger)}
			if strict || s.Solver.Strict {
				options = append(options, mapf.WithStrictNodes())
			}
			result, err := mapf.Search(cmd.Context(), s.Graph(), start, goal, mapf.Manhattan, options...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.output == "json" {
				path := result.Path
				if path == nil {
					path = []mapf.Cell{}
				}
				return writeJSON(out, pathReport{
					Start:         start,
					Goal:          goal,
					Found:         result.Found,
					Path:          path,
					TotalCost:     result.TotalCost,
					ExpandedNodes: result.ExpandedNodes,
				})
			}

			if !result.Found {
				fmt.Fprintf(out, "no path from %v to %v (expanded %d)\n", start, goal, result.ExpandedNodes)
				return nil
			}
			fmt.Fprint(out, render.New(out).Map(s.Grid, [][]mapf.Cell{result.Path}))
			fmt.Fprintf(out, "%v -> %v: %d hops, expanded %d\n", start, goal, result.TotalCost, result.ExpandedNodes)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start cell as row,col")
	cmd.Flags().StringVar(&to, "to", "", "Goal cell as row,col")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when start or goal is not a free cell")
	return cmd
}
