package huffman

import (
	"container/heap"
)

// Build constructs a Huffman tree from the given frequency table, using the
// classic greedy algorithm: repeatedly remove the two nodes of lowest
// frequency, join them under a new Internal node (the first removed becomes
// the Zero child, the second the One child), and put the new node back, until
// only the root remains.
//
// Ties between nodes of equal frequency are broken by age: leaves are queued
// in ascending Symbol order, and each Internal node is younger than every node
// queued before it.  The result is therefore fully determined by the table.
//
// A table with exactly one entry yields a bare *Leaf.  An empty table yields
// ErrEmptyAlphabet.
//
func Build(table FrequencyTable) (Node, error) {
	if len(table) == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbols := table.Symbols()
	h := nodeHeap{list: make([]nodeAndSeq, 0, len(symbols))}
	for _, sym := range symbols {
		h.list = append(h.list, nodeAndSeq{NewLeaf(sym, table[sym]), h.nextSeq})
		h.nextSeq++
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)
		heap.Push(&h, nodeAndSeq{NewInternal(a.node, b.node), h.nextSeq})
		h.nextSeq++
	}

	return heap.Pop(&h).(nodeAndSeq).node, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq struct {
	node Node
	seq  uint32
}

type nodeHeap struct {
	list    []nodeAndSeq
	nextSeq uint32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	af, bf := a.node.Frequency(), b.node.Frequency()
	if af != bf {
		return af < bf
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
