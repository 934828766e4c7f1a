package flat

import "container/heap"

var _ heap.Interface = (*minHeap)(nil)

type scored struct {
	id    int
	score float64
}

// minHeap keeps the lowest score at the root so the weakest of the current
// top-k can be evicted in O(log k).
type minHeap []scored

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].score < h[j].score }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) {
	*h = append(*h, x.(scored))
}

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topK returns the k best candidates ordered by descending score.
func topK(k int, n int, score func(i int) float64) []scored {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	h := make(minHeap, 0, k)
	for i := 0; i < n; i++ {
		s := score(i)
		if h.Len() < k {
			heap.Push(&h, scored{id: i, score: s})
			continue
		}
		if s > h[0].score {
			h[0] = scored{id: i, score: s}
			heap.Fix(&h, 0)
		}
	}

	out := make([]scored, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(scored)
	}
	return out
}
