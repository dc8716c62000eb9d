package datastructure

import (
	"errors"

	"github.com/lintang-b-s/arterial/pkg"
)

var (
	ErrEmptyHeap       = errors.New("heap is empty")
	ErrInvalidDecrease = errors.New("node not in heap or new rank is larger")
)

// PriorityQueueNode. item with its rank and its current slot in the heap (-1 once popped)
type PriorityQueueNode[T comparable] struct {
	rank    float64
	seq     uint64
	item    T
	itemPos int
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item, itemPos: -1}
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

// MinHeap. d-ary min heap with decrease-key. equal ranks pop in insertion order,
// so a search over it expands ties deterministically.
type MinHeap[T comparable] struct {
	nodes   []*PriorityQueueNode[T]
	d       int
	nextSeq uint64
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

// NewdAryHeap. d < 2 falls back to a binary heap
func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	if d < 2 {
		d = 2
	}
	return &MinHeap[T]{d: d}
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.nodes[i], h.nodes[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.seq < b.seq
}

func (h *MinHeap[T]) swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].itemPos = i
	h.nodes[j].itemPos = j
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / h.d
		if !h.less(i, p) {
			return
		}
		h.swap(i, p)
		i = p
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.nodes)
	for {
		first := i*h.d + 1
		if first >= n {
			return
		}
		best := first
		for c := first + 1; c < first+h.d && c < n; c++ {
			if h.less(c, best) {
				best = c
			}
		}
		if !h.less(best, i) {
			return
		}
		h.swap(i, best)
		i = best
	}
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.nodes) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.nodes)
}

// GetMinrank. rank of the root, 2*INF_WEIGHT when empty
func (h *MinHeap[T]) GetMinrank() float64 {
	if h.IsEmpty() {
		return 2 * pkg.INF_WEIGHT
	}
	return h.nodes[0].rank
}

func (h *MinHeap[T]) Insert(node *PriorityQueueNode[T]) {
	node.seq = h.nextSeq
	h.nextSeq++
	node.itemPos = len(h.nodes)
	h.nodes = append(h.nodes, node)
	h.siftUp(node.itemPos)
}

func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	root := h.nodes[0]
	last := len(h.nodes) - 1
	h.swap(0, last)
	h.nodes[last] = nil
	h.nodes = h.nodes[:last]
	root.itemPos = -1
	if last > 0 {
		h.siftDown(0)
	}
	return root, nil
}

// DecreaseKey. node must still be in the heap and rank must not exceed its current rank
func (h *MinHeap[T]) DecreaseKey(node *PriorityQueueNode[T], rank float64) error {
	pos := node.itemPos
	if pos < 0 || pos >= len(h.nodes) || h.nodes[pos] != node || node.rank < rank {
		return ErrInvalidDecrease
	}
	node.rank = rank
	h.siftUp(pos)
	return nil
}
