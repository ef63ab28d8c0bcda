package mapf

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pdrpinto/mapf/internal"
	"go.uber.org/zap"
)

// Conflict records a node selected by more than one agent in the same round.
type Conflict[NodeType comparable] struct {
	Round  int      `json:"round"`
	Node   NodeType `json:"node"`
	Agents []int    `json:"agents"`
	// Excised lists the contenders that lost the node.
	Excised []int `json:"excised"`
}

// AgentResult is the outcome for one agent. Path is empty when the goal was
// never reached. FoundRound is the round the goal was expanded and
// FinishedRound the round the agent's open set ran empty.
type AgentResult[NodeType comparable] struct {
	Agent         int        `json:"agent"`
	Start         NodeType   `json:"start"`
	Goal          NodeType   `json:"goal"`
	Path          []NodeType `json:"path"`
	Found         bool       `json:"found"`
	ExpandedNodes int        `json:"expanded_nodes"`
	ExcisedNodes  int        `json:"excised_nodes"`
	FoundRound    int        `json:"found_round"`
	FinishedRound int        `json:"finished_round"`
}

// MultiResult aggregates a coordinator run.
type MultiResult[NodeType comparable] struct {
	RunID     string                     `json:"run_id"`
	Rounds    int                        `json:"rounds"`
	Agents    []AgentResult[NodeType]    `json:"agents"`
	Conflicts []Conflict[NodeType]       `json:"conflicts"`
	Trace     *ConstraintTrace[NodeType] `json:"-"`
}

// Paths returns one path per agent, in agent order.
func (r MultiResult[NodeType]) Paths() [][]NodeType {
	paths := make([][]NodeType, len(r.Agents))
	for i, agent := range r.Agents {
		paths[i] = agent.Path
	}
	return paths
}

// AgentSnapshot is one agent's view of a round.
type AgentSnapshot[NodeType comparable] struct {
	Agent    int
	Current  NodeType
	Selected bool
	Excised  bool
	Open     map[NodeType]bool
	Closed   map[NodeType]bool
	Done     bool
	Found    bool
	Path     []NodeType
}

// RoundSnapshot exposes the state after one coordinator round.
type RoundSnapshot[NodeType comparable] struct {
	Round     int
	Agents    []AgentSnapshot[NodeType]
	Conflicts []Conflict[NodeType]
	Done      bool
}

type agentSlot[NodeType comparable] struct {
	state       *searchState[NodeType]
	result      AgentResult[NodeType]
	done        bool
	selected    NodeType
	hasSelected bool
	excised     bool
	relaxations []Relaxation[NodeType]
}

// Coordinator advances one A* search per agent in lockstep rounds. Every
// active agent selects exactly one node per round; nodes selected by more
// than one agent are excised according to the ConflictPolicy before the
// remaining selections are expanded. An agent records its path when it
// expands its goal and stays active, still taking part in conflicts, until
// its open set is empty.
type Coordinator[NodeType comparable] struct {
	graph   Graph[NodeType]
	options Options
	logger  *zap.Logger
	runID   string

	agents    []*agentSlot[NodeType]
	trace     *ConstraintTrace[NodeType]
	conflicts []Conflict[NodeType]
	round     int
}

// NewCoordinator prepares one search per (starts[i], goals[i]) pair.
func NewCoordinator[NodeType comparable](
	graph Graph[NodeType],
	starts []NodeType,
	goals []NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (*Coordinator[NodeType], error) {
	if len(starts) != len(goals) {
		return nil, fmt.Errorf("%w: %d starts, %d goals", ErrAgentMismatch, len(starts), len(goals))
	}
	if len(starts) == 0 {
		return nil, ErrNoAgents
	}

	opts := buildOptions(options)
	for i := range starts {
		if err := checkNodes(graph, opts.StrictNodes, starts[i], goals[i]); err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
	}

	runID := uuid.NewString()
	c := &Coordinator[NodeType]{
		graph:   graph,
		options: opts,
		logger:  opts.Logger.With(zap.String("run_id", runID)),
		runID:   runID,
		agents:  make([]*agentSlot[NodeType], len(starts)),
		trace:   NewConstraintTrace[NodeType](),
	}
	for i := range starts {
		c.agents[i] = &agentSlot[NodeType]{
			state: newSearchState(starts[i], goals[i], heuristic, opts.TieBreak),
			result: AgentResult[NodeType]{
				Agent: i,
				Start: starts[i],
				Goal:  goals[i],
				Path:  []NodeType{},
			},
		}
	}
	c.logger.Debug("coordinator created",
		zap.Int("agents", len(starts)),
		zap.Int("workers", opts.NumberOfWorkers),
		zap.Stringer("tie_break", opts.TieBreak),
		zap.Stringer("conflict_policy", opts.ConflictPolicy),
	)
	return c, nil
}

// RunID identifies this coordinator in logs and results.
func (c *Coordinator[NodeType]) RunID() string { return c.runID }

// Round returns the number of completed rounds.
func (c *Coordinator[NodeType]) Round() int { return c.round }

// Done reports whether every agent's open set is empty.
func (c *Coordinator[NodeType]) Done() bool {
	for _, slot := range c.agents {
		if !slot.done {
			return false
		}
	}
	return true
}

// Step runs one round. After termination it returns the final snapshot
// without advancing. It fails with ErrRoundLimit once the configured bound
// is reached and with the context error when ctx is done; neither leaves a
// round half-applied.
func (c *Coordinator[NodeType]) Step(ctx context.Context) (RoundSnapshot[NodeType], error) {
	if c.Done() {
		return c.snapshot(nil), nil
	}
	if err := ctx.Err(); err != nil {
		return c.snapshot(nil), fmt.Errorf("round %d: %w", c.round+1, err)
	}
	if c.round >= c.options.MaxRounds {
		return c.snapshot(nil), fmt.Errorf("%w: %d rounds", ErrRoundLimit, c.round)
	}
	c.round++

	selectedBy, order := c.selectNodes()
	roundConflicts := c.resolveConflicts(selectedBy, order)

	tasks := make([]expandTask[NodeType], 0, len(c.agents))
	for _, slot := range c.agents {
		if slot.hasSelected && !slot.excised {
			tasks = append(tasks, expandTask[NodeType]{slot: slot, node: slot.selected})
		}
	}
	if err := expandAll(c.graph, tasks, c.options.NumberOfWorkers); err != nil {
		return c.snapshot(roundConflicts), fmt.Errorf("round %d: %w", c.round, err)
	}

	c.reduce()
	c.logger.Debug("round complete",
		zap.Int("round", c.round),
		zap.Int("expanded", len(tasks)),
		zap.Int("conflicts", len(roundConflicts)),
	)
	return c.snapshot(roundConflicts), nil
}

// selectNodes picks each active agent's minimum f node and groups agents by
// selected node. order lists the nodes in first-selected order.
func (c *Coordinator[NodeType]) selectNodes() (map[NodeType][]int, []NodeType) {
	selectedBy := make(map[NodeType][]int)
	var order []NodeType
	for i, slot := range c.agents {
		slot.hasSelected = false
		slot.excised = false
		slot.relaxations = nil
		if slot.done {
			continue
		}
		node, ok := slot.state.peek()
		if !ok {
			c.finish(i)
			continue
		}
		slot.selected = node
		slot.hasSelected = true
		if _, seen := selectedBy[node]; !seen {
			order = append(order, node)
		}
		selectedBy[node] = append(selectedBy[node], i)
	}
	return selectedBy, order
}

func (c *Coordinator[NodeType]) resolveConflicts(selectedBy map[NodeType][]int, order []NodeType) []Conflict[NodeType] {
	var roundConflicts []Conflict[NodeType]
	for _, node := range order {
		contenders := selectedBy[node]
		if len(contenders) < 2 {
			continue
		}
		losers := contenders
		if c.options.ConflictPolicy == YieldToFirst {
			losers = contenders[1:]
		}
		conflict := Conflict[NodeType]{
			Round:  c.round,
			Node:   node,
			Agents: append([]int(nil), contenders...),
		}
		for _, i := range losers {
			slot := c.agents[i]
			if slot.state.excise(node) {
				slot.excised = true
				conflict.Excised = append(conflict.Excised, i)
			}
		}
		c.logger.Debug("conflict",
			zap.Int("round", c.round),
			zap.Stringer("node", nodeStringer[NodeType]{node: node}),
			zap.Ints("agents", conflict.Agents),
			zap.Ints("excised", conflict.Excised),
		)
		roundConflicts = append(roundConflicts, conflict)
	}
	c.conflicts = append(c.conflicts, roundConflicts...)
	return roundConflicts
}

// reduce folds the round's relaxations into the trace in agent order,
// records the path of agents that expanded their goal and terminates agents
// that ran out of open nodes.
func (c *Coordinator[NodeType]) reduce() {
	for i, slot := range c.agents {
		if slot.done {
			continue
		}
		for _, relaxation := range slot.relaxations {
			c.trace.Record(relaxation.Node, relaxation.From)
		}
		if slot.hasSelected && !slot.excised && slot.selected == slot.state.goal && !slot.result.Found {
			c.reachGoal(i)
		}
		if slot.state.openEmpty() {
			c.finish(i)
		}
	}
}

func (c *Coordinator[NodeType]) reachGoal(i int) {
	slot := c.agents[i]
	slot.result.Found = true
	slot.result.FoundRound = c.round
	slot.result.Path = slot.state.path(slot.state.goal)
	c.logger.Debug("goal reached",
		zap.Int("agent", i),
		zap.Int("round", c.round),
		zap.Int("path_length", len(slot.result.Path)),
	)
}

func (c *Coordinator[NodeType]) finish(i int) {
	slot := c.agents[i]
	slot.done = true
	slot.result.FinishedRound = c.round
	slot.result.ExpandedNodes = slot.state.expanded
	slot.result.ExcisedNodes = slot.state.excised
	slot.state = nil
	c.logger.Debug("agent finished",
		zap.Int("agent", i),
		zap.Int("round", c.round),
		zap.Bool("found", slot.result.Found),
	)
}

// Run steps until every agent's open set is empty.
func (c *Coordinator[NodeType]) Run(ctx context.Context) (MultiResult[NodeType], error) {
	for !c.Done() {
		if _, err := c.Step(ctx); err != nil {
			return c.Result(), err
		}
	}
	c.logger.Info("coordinator finished",
		zap.Int("rounds", c.round),
		zap.Int("conflicts", len(c.conflicts)),
	)
	return c.Result(), nil
}

// Result returns the outcome so far. Agents still searching report their
// counters and, once their goal was expanded, their path.
func (c *Coordinator[NodeType]) Result() MultiResult[NodeType] {
	result := MultiResult[NodeType]{
		RunID:     c.runID,
		Rounds:    c.round,
		Agents:    make([]AgentResult[NodeType], len(c.agents)),
		Conflicts: append([]Conflict[NodeType]{}, c.conflicts...),
		Trace:     c.trace,
	}
	for i, slot := range c.agents {
		agent := slot.result
		agent.Path = append([]NodeType{}, slot.result.Path...)
		if slot.state != nil {
			agent.ExpandedNodes = slot.state.expanded
			agent.ExcisedNodes = slot.state.excised
		}
		result.Agents[i] = agent
	}
	return result
}

func (c *Coordinator[NodeType]) snapshot(roundConflicts []Conflict[NodeType]) RoundSnapshot[NodeType] {
	snapshot := RoundSnapshot[NodeType]{
		Round:     c.round,
		Agents:    make([]AgentSnapshot[NodeType], len(c.agents)),
		Conflicts: roundConflicts,
		Done:      c.Done(),
	}
	for i, slot := range c.agents {
		agent := AgentSnapshot[NodeType]{
			Agent:    i,
			Current:  slot.selected,
			Selected: slot.hasSelected,
			Excised:  slot.excised,
			Done:     slot.done,
			Found:    slot.result.Found,
			Path:     append([]NodeType(nil), slot.result.Path...),
		}
		if slot.state != nil {
			agent.Open = slot.state.openNodes()
			agent.Closed = internal.CopyMap(slot.state.closedSet)
		}
		snapshot.Agents[i] = agent
	}
	return snapshot
}

// FindPaths runs a coordinator over the given agents to completion.
func FindPaths[NodeType comparable](
	ctx context.Context,
	graph Graph[NodeType],
	starts []NodeType,
	goals []NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (MultiResult[NodeType], error) {
	coordinator, err := NewCoordinator(graph, starts, goals, heuristic, options...)
	if err != nil {
		return MultiResult[NodeType]{}, err
	}
	return coordinator.Run(ctx)
}

type nodeStringer[NodeType comparable] struct{ node NodeType }

func (s nodeStringer[NodeType]) String() string { return fmt.Sprint(s.node) }
