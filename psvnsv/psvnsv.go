// Package psvnsv builds, for every position in a text, the previous
// and next smaller suffix-array values (PSV/NSV) — the positions whose
// suffixes sort immediately below/above the current position's suffix
// among all suffixes that start earlier in the text (at a smaller
// position). These are salz's two LZ-factorization candidates per
// position.
package psvnsv

// Build computes PSV/NSV for a text of length n, given its suffix
// array padded with a sentinel of -1 at both ends (len(paddedSA) ==
// n+2, paddedSA[0] == -1, paddedSA[n+1] == -1, paddedSA[1:n+1] holding
// the suffix array itself). paddedSA is used as scratch space and is
// left in an unspecified state on return.
//
// Returns psv and nsv, each length n and indexed by text position: for
// position p, psv[p]/nsv[p] is -1 if no earlier-starting suffix sorts
// below/above p's suffix.
func Build(paddedSA []int32, n int) (psv, nsv []int32) {
	psv = make([]int32, n)
	nsv = make([]int32, n)

	top := 0
	for i := 1; i < n+2; i++ {
		for paddedSA[top] > paddedSA[i] {
			psv[paddedSA[top]] = paddedSA[top-1]
			nsv[paddedSA[top]] = paddedSA[i]
			top--
		}
		top++
		paddedSA[top] = paddedSA[i]
	}

	return psv, nsv
}
