package event

import "sync"

// Queue collects mixer notifications between ticks
// Every notification type is idempotent, so a repeat replaces the pending one and moves to the tail
// At most one event per type is pending: the queue never overflows and never drops a control event
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push queues ev, coalescing with a pending event of the same type
// For EventWarp the latest destination wins
func (q *Queue) Push(ev Event) {
	if ev.Type == EventNone {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.pending {
		if p.Type == ev.Type {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	q.pending = append(q.pending, ev)
}

// Consume returns pending events in arrival order of their latest push and empties the queue
func (q *Queue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the pending event count
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
