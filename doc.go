// Package mapf provides generic A* pathfinding for one agent and a lockstep
// multi-agent coordinator that resolves node contention between agents.
//
// It exposes three entry points:
//
//   - Search: run a single-agent A* search to completion and get a Result.
//   - Stepper: iterate a single-agent search one expansion at a time to drive UIs or debugging tools.
//   - Coordinator: advance N searches in synchronized rounds, excising contested
//     nodes, and collect a MultiResult with paths, conflicts and a ConstraintTrace.
//
// Every edge costs one hop. Per-agent expansions inside a round run on a
// bounded worker pool; the coordinator alone owns conflict detection and the
// shared trace.
package mapf
