package main

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/mapf"
	"github.com/pdrpinto/mapf/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type solveReport struct {
	Scenario  string                        `json:"scenario"`
	Names     []string                      `json:"names"`
	RunID     string                        `json:"run_id"`
	Rounds    int                           `json:"rounds"`
	Complete  bool                          `json:"complete"`
	Agents    []mapf.AgentResult[mapf.Cell] `json:"agents"`
	Conflicts []mapf.Conflict[mapf.Cell]    `json:"conflicts"`
	Trace     []mapf.TraceEntry[mapf.Cell]  `json:"trace,omitempty"`
}

func (app *cli) solveCmd() *cobra.Command {
	var showTrace bool

	cmd := &cobra.Command{
		Use:   "solve [scenario]",
		Short: "Plan paths for every agent of a scenario in lockstep",
		Long: `Runs one A* search per agent in synchronized rounds. A node selected by
more than one agent in the same round is a conflict; the solver's conflict
policy decides which agents lose it for the rest of the search.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args)
			if err != nil {
				return err
			}
			options, err := s.Options(app.logger)
			if err != nil {
				return err
			}

			app.logger.Info("solving scenario",
				zap.String("scenario", s.Name),
				zap.Int("agents", len(s.Agents)),
			)
			result, runErr := mapf.FindPaths(cmd.Context(), s.Graph(), s.Starts(), s.Goals(), mapf.Manhattan, options...)
			if runErr != nil && !errors.Is(runErr, mapf.ErrRoundLimit) {
				return runErr
			}

			names := make([]string, len(s.Agents))
			for i, agent := range s.Agents {
				names[i] = agent.Name
			}

			out := cmd.OutOrStdout()
			if app.output == "json" {
				report := solveReport{
					Scenario:  s.Name,
					Names:     names,
					RunID:     result.RunID,
					Rounds:    result.Rounds,
					Complete:  runErr == nil,
					Agents:    result.Agents,
					Conflicts: result.Conflicts,
				}
				if showTrace {
					report.Trace = result.Trace.EntriesFor(s.Grid.FreeCells())
				}
				if err := writeJSON(out, report); err != nil {
					return err
				}
				return runErr
			}

			r := render.New(out)
			fmt.Fprintf(out, "%s: %d agents, %d rounds\n\n", s.Name, len(s.Agents), result.Rounds)
			fmt.Fprint(out, r.Map(s.Grid, result.Paths()))
			fmt.Fprintln(out)
			fmt.Fprint(out, r.Paths(names, result))
			fmt.Fprintln(out)
			fmt.Fprint(out, r.Conflicts(result.Conflicts))
			if showTrace {
				fmt.Fprintln(out)
				fmt.Fprint(out, r.Trace(s.Grid, result.Trace))
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Print the constraint trace")
	return cmd
}
