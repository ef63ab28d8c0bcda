package mapf

import (
	"context"
	"fmt"
)

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// Search executes single-agent A* from startNode to goalNode.
//
// An unreachable goal is not an error: the returned Result has Found set to
// false and a nil Path. Errors are limited to context cancellation and, with
// WithStrictNodes, ErrUnknownNode.
func Search[NodeType comparable](
	ctx context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := buildOptions(options)
	if err := checkNodes(graph, searchOptions.StrictNodes, startNode, goalNode); err != nil {
		return Result[NodeType]{}, err
	}

	stepper := NewStepper(graph, startNode, goalNode, heuristic, options...)
	for !stepper.advance() {
		if err := ctx.Err(); err != nil {
			return Result[NodeType]{ExpandedNodes: stepper.state.expanded}, fmt.Errorf("search interrupted: %w", err)
		}
	}

	result := Result[NodeType]{
		ExpandedNodes: stepper.state.expanded,
		Found:         stepper.found,
	}
	if stepper.found {
		result.Path = stepper.path
		result.TotalCost = len(stepper.path) - 1
	}
	return result, nil
}

// FindPath is Search without context or options. The boolean is false when
// no path exists.
func FindPath[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) ([]NodeType, bool) {
	result, err := Search(context.Background(), graph, startNode, goalNode, heuristic)
	if err != nil {
		return nil, false
	}
	return result.Path, result.Found
}
