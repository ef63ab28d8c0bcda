package mapf

import "errors"

var (
	// ErrUnknownNode is returned in strict mode when a start or goal is not a
	// node of the graph.
	ErrUnknownNode = errors.New("mapf: node not in graph")

	// ErrAgentMismatch is returned when starts and goals differ in length.
	ErrAgentMismatch = errors.New("mapf: starts and goals differ in length")

	// ErrNoAgents is returned when a coordinator is built without agents.
	ErrNoAgents = errors.New("mapf: no agents")

	// ErrRoundLimit is returned when the coordinator hits its round bound
	// before every agent terminated. The accompanying result is partial.
	ErrRoundLimit = errors.New("mapf: round limit reached")

	// ErrUnknownOption is returned when parsing an unrecognised option name.
	ErrUnknownOption = errors.New("mapf: unknown option value")
)
