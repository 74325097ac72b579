package voronoi

import (
	"container/heap"
	"math"
)

// eventSlack is added to every queue capacity so tiny chunks have room for
// their first circle events.
const eventSlack = 16

type eventKind uint8

const (
	circleEvent eventKind = iota
	siteEvent
)

func (k eventKind) String() string {
	if k == siteEvent {
		return "site"
	}
	return "circle"
}

// event is a site or a circle event. y is the sweep position at which it
// fires; for circle events yCenter is the y of the Voronoi vertex and node
// the tree node of the vanishing arc.
type event struct {
	id      int
	kind    eventKind
	x       float64
	y       float64
	yCenter float64
	site    int
	node    int
}

// eventHeap orders by (y, x). Circle events go first on exact ties.
type eventHeap []event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.y != b.y {
		return a.y < b.y
	}
	if a.x != b.x {
		return a.x < b.x
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.id < b.id
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(event)) }

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// eventQueue is a fixed capacity binary min-heap of sweep events.
type eventQueue struct {
	heap     eventHeap
	capacity int
}

func eventCapacity(sites int, factor float64) int {
	return int(math.Ceil(float64(sites)*factor)) + eventSlack
}

func newEventQueue(capacity int) *eventQueue {
	return &eventQueue{
		heap:     make(eventHeap, 0, capacity),
		capacity: capacity,
	}
}

func (q *eventQueue) len() int {
	return len(q.heap)
}

func (q *eventQueue) full() bool {
	return len(q.heap) >= q.capacity
}

func (q *eventQueue) insert(e event) {
	if q.full() {
		fatalf(ErrCapacity, "event queue holds %d events", q.capacity)
	}
	heap.Push(&q.heap, e)
}

func (q *eventQueue) popMin() event {
	if len(q.heap) == 0 {
		fatalf(ErrEmptyQueue, "pop")
	}
	return heap.Pop(&q.heap).(event)
}

func (q *eventQueue) peek() event {
	if len(q.heap) == 0 {
		fatalf(ErrEmptyQueue, "peek")
	}
	return q.heap[0]
}

// removeByID scans for the event, moves the last one into its slot and
// restores the heap order around it.
func (q *eventQueue) removeByID(id int) bool {
	for i := range q.heap {
		if q.heap[i].id == id {
			heap.Remove(&q.heap, i)
			return true
		}
	}
	return false
}
