package psvnsv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildPadded mirrors how salz.Encode lays out a suffix array before
// handing it to Build: a -1 sentinel on each end around the sorted
// suffix positions.
func buildPadded(sa []int32) []int32 {
	padded := make([]int32, len(sa)+2)
	padded[0] = -1
	copy(padded[1:], sa)
	padded[len(padded)-1] = -1
	return padded
}

func TestBuildAscendingSuffixArray(t *testing.T) {
	// sa lists text positions in ascending suffix order, so position
	// p's immediate predecessor in sa is always p-1: every position
	// after 0 has a PSV (the previous position), and none has an NSV.
	sa := []int32{0, 1, 2, 3}
	padded := buildPadded(sa)

	psv, nsv := Build(padded, len(sa))
	require.Equal(t, []int32{-1, 0, 1, 2}, psv)
	require.Equal(t, []int32{-1, -1, -1, -1}, nsv)
}

func TestBuildDescendingSuffixArray(t *testing.T) {
	sa := []int32{3, 2, 1, 0}
	padded := buildPadded(sa)

	psv, nsv := Build(padded, len(sa))
	require.Equal(t, []int32{-1, -1, -1, -1}, psv)
	require.Equal(t, []int32{-1, 0, 1, 2}, nsv)
}

func TestBuildEmpty(t *testing.T) {
	padded := buildPadded(nil)
	psv, nsv := Build(padded, 0)
	require.Empty(t, psv)
	require.Empty(t, nsv)
}
