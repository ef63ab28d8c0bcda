package mapf

import "golang.org/x/sync/errgroup"

// Relaxation records that Node's best known predecessor became From.
type Relaxation[NodeType comparable] struct {
	Node NodeType
	From NodeType
}

// expandTask is one agent's expansion for the current round.
type expandTask[NodeType comparable] struct {
	slot *agentSlot[NodeType]
	node NodeType
}

// expandAll runs every task on at most numberOfWorkers goroutines and returns
// once all of them finished. A task touches only its own agent state.
func expandAll[NodeType comparable](
	graph Graph[NodeType],
	tasks []expandTask[NodeType],
	numberOfWorkers int,
) error {
	if len(tasks) == 1 || numberOfWorkers == 1 {
		for _, task := range tasks {
			task.slot.relaxations = task.slot.state.expand(graph, task.node)
		}
		return nil
	}

	var group errgroup.Group
	group.SetLimit(numberOfWorkers)
	for _, task := range tasks {
		group.Go(func() error {
			task.slot.relaxations = task.slot.state.expand(graph, task.node)
			return nil
		})
	}
	return group.Wait()
}
