package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akiutoslahti/go-salz/factor"
)

func TestOptimizeAllLiteralsWhenNoCandidateMeetsMinLength(t *testing.T) {
	n := 5
	a := factor.NewArena(n)
	res := Optimize(a, n)
	for pos := 0; pos < n; pos++ {
		require.Equal(t, int32(1), res.Length[pos])
	}
}

func TestOptimizePrefersCheaperFactorOverLiterals(t *testing.T) {
	n := 10
	a := factor.NewArena(n)
	// at position 1, an 8-byte match at offset 1 costs far less than
	// 8 separate literals.
	a.SetPSV(1, 1, 8)
	res := Optimize(a, n)
	require.Equal(t, int32(8), res.Length[1])
	require.Equal(t, int32(1), res.Offset[1])
}

func TestOptimizeSkipsCandidateBelowMinLength(t *testing.T) {
	n := 4
	a := factor.NewArena(n)
	a.SetPSV(1, 1, int32(factor.MinLength-1))
	res := Optimize(a, n)
	require.Equal(t, int32(1), res.Length[1])
}

func TestOptimizePicksLowerCostBetweenPSVAndNSV(t *testing.T) {
	n := 12
	a := factor.NewArena(n)
	// Same length from both, but PSV's offset is tiny (cheap) and
	// NSV's offset is huge (needs more vnibble bits) — PSV should win.
	a.SetPSV(2, 1, 6)
	a.SetNSV(2, 1<<20, 6)
	res := Optimize(a, n)
	require.Equal(t, int32(1), res.Offset[2])
}
