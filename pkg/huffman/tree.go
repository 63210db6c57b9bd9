package huffman

import (
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree. Leaves carry a symbol, internal nodes
// always have both children and the sum of their frequencies.
type Node struct {
	Symbol Symbol
	Freq   uint64
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n holds a symbol.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// queuedNode pairs a node with the order it entered the queue in, so equal
// frequencies always pop in the same order.
type queuedNode struct {
	node *Node
	seq  int
}

type nodeQueue []queuedNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].node.Freq != q[j].node.Freq {
		return q[i].node.Freq < q[j].node.Freq
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(queuedNode))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// BuildTree builds a Huffman tree by repeatedly merging the two least
// frequent nodes. Leaves enter the queue in ascending symbol order. A table
// with one symbol yields a single leaf as root.
func BuildTree(freq FrequencyTable) (*Node, error) {
	if len(freq) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrInvalidFrequencyTable)
	}

	queue := make(nodeQueue, 0, len(freq))
	for _, sym := range freq.Symbols() {
		count := freq[sym]
		if count == 0 {
			return nil, fmt.Errorf("%w: symbol %q has zero count", ErrInvalidFrequencyTable, rune(sym))
		}
		queue = append(queue, queuedNode{node: &Node{Symbol: sym, Freq: count}, seq: len(queue)})
	}
	heap.Init(&queue)

	seq := queue.Len()
	for queue.Len() > 1 {
		left := heap.Pop(&queue).(queuedNode).node
		right := heap.Pop(&queue).(queuedNode).node
		sum := left.Freq + right.Freq
		assert.Assertf(sum > left.Freq && sum > right.Freq, "frequency overflow: %d + %d", left.Freq, right.Freq)

		heap.Push(&queue, queuedNode{
			node: &Node{Freq: sum, Left: left, Right: right},
			seq:  seq,
		})
		seq++
	}

	root := queue[0].node
	assert.Assertf(root.Freq == freq.Total(), "root frequency %d != text length %d", root.Freq, freq.Total())
	return root, nil
}
