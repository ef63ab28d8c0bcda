package mapf

import (
	"container/heap"

	"github.com/pdrpinto/mapf/internal"
)

// searchState is the A* bookkeeping of one agent. Missing gScore and fScore
// entries stand for +Inf.
type searchState[NodeType comparable] struct {
	start     NodeType
	goal      NodeType
	heuristic Heuristic[NodeType]
	tieBreak  TieBreak

	openSet    PriorityQueue[NodeType]
	openSetMap map[NodeType]*PriorityQueueItem[NodeType]
	closedSet  map[NodeType]bool
	cameFrom   map[NodeType]NodeType
	gScore     map[NodeType]int
	fScore     map[NodeType]int

	sequence int64
	expanded int
	excised  int
}

func newSearchState[NodeType comparable](
	start NodeType,
	goal NodeType,
	heuristic Heuristic[NodeType],
	tieBreak TieBreak,
) *searchState[NodeType] {
	s := &searchState[NodeType]{
		start:      start,
		goal:       goal,
		heuristic:  heuristic,
		tieBreak:   tieBreak,
		openSet:    make(PriorityQueue[NodeType], 0),
		openSetMap: make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:  make(map[NodeType]bool),
		cameFrom:   make(map[NodeType]NodeType),
		gScore:     map[NodeType]int{start: 0},
		fScore:     make(map[NodeType]int),
	}
	heap.Init(&s.openSet)
	f := heuristic(start, goal)
	s.fScore[start] = f
	s.push(start, f)
	return s
}

func (s *searchState[NodeType]) push(node NodeType, f int) {
	s.sequence++
	rank := s.sequence
	if s.tieBreak == LastInserted {
		rank = -rank
	}
	item := &PriorityQueueItem[NodeType]{Node: node, FCost: f, Rank: rank}
	heap.Push(&s.openSet, item)
	s.openSetMap[node] = item
}

// peek returns the open node with minimum f score without removing it.
func (s *searchState[NodeType]) peek() (NodeType, bool) {
	if s.openSet.Len() == 0 {
		var zero NodeType
		return zero, false
	}
	return s.openSet[0].Node, true
}

func (s *searchState[NodeType]) openEmpty() bool {
	return s.openSet.Len() == 0
}

// close moves node to the closed set, dropping it from the open set first.
func (s *searchState[NodeType]) close(node NodeType) {
	if item, ok := s.openSetMap[node]; ok {
		heap.Remove(&s.openSet, item.IndexInQueue)
		delete(s.openSetMap, node)
	}
	s.closedSet[node] = true
}

// expand closes current and relaxes its neighbors with unit cost. It returns
// the relaxations that improved a gScore, in neighbor order.
func (s *searchState[NodeType]) expand(graph Graph[NodeType], current NodeType) []Relaxation[NodeType] {
	s.close(current)
	s.expanded++

	var relaxations []Relaxation[NodeType]
	currentG := s.gScore[current]
	for _, neighbor := range graph.Neighbors(current) {
		if s.closedSet[neighbor] {
			continue
		}
		tentativeG := currentG + 1
		if previousG, ok := s.gScore[neighbor]; ok && tentativeG >= previousG {
			continue
		}
		f := tentativeG + s.heuristic(neighbor, s.goal)
		s.cameFrom[neighbor] = current
		s.gScore[neighbor] = tentativeG
		s.fScore[neighbor] = f
		if item, inOpen := s.openSetMap[neighbor]; inOpen {
			item.FCost = f
			heap.Fix(&s.openSet, item.IndexInQueue)
		} else {
			s.push(neighbor, f)
		}
		relaxations = append(relaxations, Relaxation[NodeType]{Node: neighbor, From: current})
	}
	return relaxations
}

// excise is the conflict transition: node leaves the open set for the closed
// set without being expanded. It reports false when node was not open.
func (s *searchState[NodeType]) excise(node NodeType) bool {
	if _, ok := s.openSetMap[node]; !ok {
		return false
	}
	s.close(node)
	s.excised++
	return true
}

func (s *searchState[NodeType]) path(to NodeType) []NodeType {
	return internal.ReconstructPath(s.cameFrom, to, s.start)
}

func (s *searchState[NodeType]) openNodes() map[NodeType]bool {
	m := make(map[NodeType]bool, len(s.openSetMap))
	for node := range s.openSetMap {
		m[node] = true
	}
	return m
}
