package mapf

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// DefaultMaxRounds bounds a coordinator run when WithMaxRounds is not given.
const DefaultMaxRounds = 1 << 20

// TieBreak selects which of several open nodes with equal f score is
// expanded first.
type TieBreak int

const (
	// FirstInserted expands the node that entered the open set earliest.
	FirstInserted TieBreak = iota
	// LastInserted expands the node that entered the open set most recently.
	LastInserted
)

func (t TieBreak) String() string {
	switch t {
	case FirstInserted:
		return "first"
	case LastInserted:
		return "last"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak parses "first" or "last". The empty string means first.
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "first":
		return FirstInserted, nil
	case "last":
		return LastInserted, nil
	default:
		return 0, fmt.Errorf("%w: tie break %q", ErrUnknownOption, s)
	}
}

// ConflictPolicy decides which contenders lose a conflict node.
type ConflictPolicy int

const (
	// ExciseAll removes the conflict node from every contending agent.
	ExciseAll ConflictPolicy = iota
	// YieldToFirst lets the lowest agent index keep the node; every other
	// contender excises it.
	YieldToFirst
)

func (p ConflictPolicy) String() string {
	switch p {
	case ExciseAll:
		return "excise-all"
	case YieldToFirst:
		return "yield-to-first"
	default:
		return fmt.Sprintf("ConflictPolicy(%d)", int(p))
	}
}

// ParseConflictPolicy parses "excise-all" or "yield-to-first". The empty
// string means excise-all.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch s {
	case "", "excise-all":
		return ExciseAll, nil
	case "yield-to-first":
		return YieldToFirst, nil
	default:
		return 0, fmt.Errorf("%w: conflict policy %q", ErrUnknownOption, s)
	}
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	MaxRounds       int
	TieBreak        TieBreak
	ConflictPolicy  ConflictPolicy
	StrictNodes     bool
	Logger          *zap.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines expand agents within a round.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxRounds bounds the number of coordinator rounds. Zero or less means
// DefaultMaxRounds.
func WithMaxRounds(rounds int) Option {
	return func(options *Options) { options.MaxRounds = rounds }
}

// WithTieBreak sets the open-set tie break.
func WithTieBreak(tieBreak TieBreak) Option {
	return func(options *Options) { options.TieBreak = tieBreak }
}

// WithConflictPolicy sets how contested nodes are resolved.
func WithConflictPolicy(policy ConflictPolicy) Option {
	return func(options *Options) { options.ConflictPolicy = policy }
}

// WithStrictNodes rejects start and goal nodes that the graph does not
// contain with ErrUnknownNode instead of reporting them as unreachable.
// It only applies to graphs implementing NodeSet.
func WithStrictNodes() Option {
	return func(options *Options) { options.StrictNodes = true }
}

// WithLogger attaches a zap logger. Searches are silent by default.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		MaxRounds:       DefaultMaxRounds,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.MaxRounds <= 0 {
		searchOptions.MaxRounds = DefaultMaxRounds
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = zap.NewNop()
	}
	return searchOptions
}

func checkNodes[NodeType comparable](graph Graph[NodeType], strict bool, nodes ...NodeType) error {
	if !strict {
		return nil
	}
	set, ok := graph.(NodeSet[NodeType])
	if !ok {
		return nil
	}
	for _, node := range nodes {
		if !set.Contains(node) {
			return fmt.Errorf("%w: %v", ErrUnknownNode, node)
		}
	}
	return nil
}
