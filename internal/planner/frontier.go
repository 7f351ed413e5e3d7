package planner

import (
	"container/heap"

	"cost-planner/internal/location"
)

// entry is a scored path waiting to be expanded
type entry struct {
	path  location.Path
	cost  Cost
	seq   int // Insertion order, breaks ties deterministically
	index int // Index in the heap
}

// priorityQueue implements heap.Interface, cheapest path first
type priorityQueue []*entry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.cost.Value != b.cost.Value {
		return a.cost.Value < b.cost.Value
	}
	if a.cost.Degraded != b.cost.Degraded {
		return a.cost.Degraded < b.cost.Degraded
	}
	return a.seq < b.seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	e := x.(*entry)
	e.index = n
	*pq = append(*pq, e)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[0 : n-1]
	return e
}

// frontier holds scored paths whose waypoints have not been nudged yet
type frontier struct {
	queue priorityQueue
	seq   int
}

func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(&f.queue)
	return f
}

func (f *frontier) push(path location.Path, cost Cost) {
	heap.Push(&f.queue, &entry{path: path, cost: cost, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() (location.Path, Cost) {
	e := heap.Pop(&f.queue).(*entry)
	return e.path, e.cost
}

func (f *frontier) len() int {
	return f.queue.Len()
}
