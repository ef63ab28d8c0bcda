package mapf

import (
	"github.com/pdrpinto/mapf/internal"
	"go.uber.org/zap"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	StepIndex int
}

// Stepper runs a single-agent search one node expansion at a time
type Stepper[NodeType comparable] struct {
	graph  Graph[NodeType]
	state  *searchState[NodeType]
	logger *zap.Logger

	current   NodeType
	path      []NodeType
	stepCount int
	done      bool
	found     bool
}

// NewStepper creates a stepper positioned before the first expansion.
func NewStepper[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	opts := buildOptions(options)
	return &Stepper[NodeType]{
		graph:  graph,
		state:  newSearchState(startNode, goalNode, heuristic, opts.TieBreak),
		logger: opts.Logger,
	}
}

// Done reports whether the search has terminated.
func (s *Stepper[NodeType]) Done() bool { return s.done }

// advance performs one expansion and reports whether the search terminated.
func (s *Stepper[NodeType]) advance() bool {
	if s.done {
		return true
	}
	current, ok := s.state.peek()
	if !ok {
		s.done = true
		s.logger.Debug("open set exhausted", zap.Int("step", s.stepCount))
		return true
	}

	s.stepCount++
	s.current = current
	if current == s.state.goal {
		s.state.close(current)
		s.state.expanded++
		s.done = true
		s.found = true
		s.path = s.state.path(current)
		s.logger.Debug("goal reached", zap.Int("step", s.stepCount), zap.Int("path_length", len(s.path)))
		return true
	}
	s.state.expand(s.graph, current)
	return false
}

// Step advances the search by one node expansion and returns a snapshot.
// Calling Step after termination returns the final snapshot again.
func (s *Stepper[NodeType]) Step() StepSnapshot[NodeType] {
	s.advance()
	return s.Snapshot()
}

// Snapshot returns a copy of the current search state.
func (s *Stepper[NodeType]) Snapshot() StepSnapshot[NodeType] {
	snapshot := StepSnapshot[NodeType]{
		Current:   s.current,
		Open:      s.state.openNodes(),
		Closed:    internal.CopyMap(s.state.closedSet),
		CameFrom:  internal.CopyMap(s.state.cameFrom),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
	if s.found {
		snapshot.Path = append([]NodeType(nil), s.path...)
	}
	return snapshot
}
