package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkNode(t *testing.T, n *Node) (leaves int) {
	if n.IsLeaf() {
		return 1
	}
	require.NotNil(t, n.Left)
	require.NotNil(t, n.Right)
	require.Equal(t, n.Left.Freq+n.Right.Freq, n.Freq)
	return checkNode(t, n.Left) + checkNode(t, n.Right)
}

func TestBuildTree(t *testing.T) {
	freq := FrequencyTable{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	root, err := BuildTree(freq)
	require.NoError(t, err)
	require.Equal(t, uint64(11), root.Freq)
	require.Equal(t, 5, checkNode(t, root))

	// c and d merge first, then b and r, then both pairs, then a.
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, Symbol('a'), root.Left.Symbol)
	require.Equal(t, Symbol('c'), root.Right.Left.Left.Symbol)
	require.Equal(t, Symbol('d'), root.Right.Left.Right.Symbol)
	require.Equal(t, Symbol('b'), root.Right.Right.Left.Symbol)
	require.Equal(t, Symbol('r'), root.Right.Right.Right.Symbol)
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	root, err := BuildTree(FrequencyTable{'x': 42})
	require.NoError(t, err)
	require.True(t, root.IsLeaf())
	require.Equal(t, Symbol('x'), root.Symbol)
	require.Equal(t, uint64(42), root.Freq)
}

func TestBuildTreeTiesAreStable(t *testing.T) {
	freq := FrequencyTable{}
	for sym := Symbol('a'); sym <= 'z'; sym++ {
		freq[sym] = 7
	}
	first, err := BuildTree(freq)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		root, err := BuildTree(freq)
		require.NoError(t, err)
		require.Equal(t, first, root)
	}
}

func TestBuildTreeErrors(t *testing.T) {
	_, err := BuildTree(FrequencyTable{})
	require.ErrorIs(t, err, ErrInvalidFrequencyTable)

	_, err = BuildTree(FrequencyTable{'a': 1, 'b': 0})
	require.ErrorIs(t, err, ErrInvalidFrequencyTable)
}
