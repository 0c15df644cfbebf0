package pathindex

import "container/heap"

// topK keeps the best-ranked hits seen so far, bounded at capacity.
// The heap root is the worst retained hit so it can be compared against
// and evicted cheaply.
type topK struct {
	hits []Hit
	cap  int
}

func newTopK(capacity int) *topK {
	return &topK{hits: make([]Hit, 0, capacity), cap: capacity}
}

func (t *topK) Len() int            { return len(t.hits) }
func (t *topK) Less(i, j int) bool  { return t.hits[j].betterThan(t.hits[i]) }
func (t *topK) Swap(i, j int)       { t.hits[i], t.hits[j] = t.hits[j], t.hits[i] }
func (t *topK) Push(x any)          { t.hits = append(t.hits, x.(Hit)) }
func (t *topK) Pop() any {
	old := t.hits
	n := len(old)
	h := old[n-1]
	t.hits = old[:n-1]
	return h
}

// offer considers a hit for retention. admitted reports whether the hit
// was kept; evicted reports whether a previously kept hit was displaced.
func (t *topK) offer(h Hit) (admitted, evicted bool) {
	if len(t.hits) < t.cap {
		heap.Push(t, h)
		return true, false
	}
	if !h.betterThan(t.hits[0]) {
		return false, false
	}
	t.hits[0] = h
	heap.Fix(t, 0)
	return true, true
}

// sorted drains nothing; it returns a copy of the retained hits ordered
// best first.
func (t *topK) sorted() []Hit {
	out := make([]Hit, len(t.hits))
	copy(out, t.hits)
	sortHits(out)
	return out
}
