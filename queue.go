package wwind

// destroyQueue is an ordered set of handles awaiting destruction. It drains
// last in, first out.
type destroyQueue struct {
	items  []Handle
	queued map[Handle]struct{}
}

func newDestroyQueue() *destroyQueue {
	return &destroyQueue{queued: make(map[Handle]struct{})}
}

// push adds h unless it is already queued.
func (q *destroyQueue) push(h Handle) bool {
	if _, ok := q.queued[h]; ok {
		return false
	}
	q.queued[h] = struct{}{}
	q.items = append(q.items, h)
	return true
}

func (q *destroyQueue) pop() (Handle, bool) {
	if len(q.items) == 0 {
		return Handle{}, false
	}
	h := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	delete(q.queued, h)
	return h, true
}

func (q *destroyQueue) contains(h Handle) bool {
	_, ok := q.queued[h]
	return ok
}

func (q *destroyQueue) len() int {
	return len(q.items)
}

func (q *destroyQueue) reset() {
	q.items = nil
	q.queued = make(map[Handle]struct{})
}
