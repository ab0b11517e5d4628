// Package parse picks, for every text position, the cheapest of its
// literal/PSV-factor/NSV-factor options by a backward dynamic-program
// single-source-shortest-path over encoded bit cost — the "optimal
// parse" step of the LZ factorization.
package parse

import (
	"github.com/akiutoslahti/go-salz/factor"
	"github.com/akiutoslahti/go-salz/vlc"
)

// literalBitCost is the fixed per-position cost of coding a literal:
// 1 token bit plus 8 bits for the byte itself.
const literalBitCost = 1 + 8

// Result holds, per text position, the chosen factor: Length[pos] == 1
// means "emit a literal", otherwise Offset[pos]/Length[pos] describe a
// backward copy of Length[pos] bytes from Offset[pos] bytes back.
type Result struct {
	Offset []int32
	Length []int32
}

// Optimize runs the backward DP over arena (built by factor.Build for
// a text of length n) and returns the minimum-bit-cost factorization.
// Position 0 is always a forced literal, matching factor.Build.
func Optimize(arena factor.Arena, n int) Result {
	cost := make([]int32, n+1)
	res := Result{Offset: make([]int32, n), Length: make([]int32, n)}
	if n == 0 {
		return res
	}

	res.Length[0] = 1

	for pos := n - 1; pos >= 1; pos-- {
		bestCost := literalBitCost + cost[pos+1]
		bestOffs := int32(0)
		bestLen := int32(1)

		if altLen := arena.PSVLen(pos); altLen >= factor.MinLength {
			altOffs := arena.PSVOffset(pos)
			altCost := 1 + factorOffsBitSize(altOffs) + factorLenBitSize(altLen) + cost[pos+int(altLen)]
			if altCost < bestCost {
				bestCost, bestOffs, bestLen = altCost, altOffs, altLen
			}
		}

		if altLen := arena.NSVLen(pos); altLen >= factor.MinLength {
			altOffs := arena.NSVOffset(pos)
			altCost := 1 + factorOffsBitSize(altOffs) + factorLenBitSize(altLen) + cost[pos+int(altLen)]
			if altCost < bestCost {
				bestCost, bestOffs, bestLen = altCost, altOffs, altLen
			}
		}

		res.Offset[pos] = bestOffs
		res.Length[pos] = bestLen
		cost[pos] = bestCost
	}

	return res
}

func factorOffsBitSize(val int32) int32 {
	return 8 + int32(vlc.NibbleBitSize(uint32(val-factor.MinOffset)>>8))
}

func factorLenBitSize(val int32) int32 {
	return int32(vlc.GR3BitSize(uint32(val) - factor.MinLength))
}
