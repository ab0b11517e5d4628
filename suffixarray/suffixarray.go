// Package suffixarray builds the suffix array that drives salz's LZ
// factorization. Construction is abstracted behind the Builder
// interface so the core never hard-codes a particular algorithm —
// callers can plug in a faster construction (SA-IS, DC3, a cgo binding
// to libdivsufsort/libsais) without touching anything downstream of
// the array itself.
package suffixarray

import (
	"sort"

	"github.com/akiutoslahti/go-salz/common/errs"
)

// Builder constructs the suffix array of text into sa. len(sa) must
// equal len(text); Build must not retain either slice after it
// returns.
type Builder interface {
	Build(text []byte, sa []int32) error
}

// Default is the package's built-in Builder: a dependency-free
// prefix-doubling (rank-doubling) construction, O(n log^2 n). It has
// no tuning knobs and is meant as a correct reference implementation,
// not a speed target — callers with large blocks should supply a
// faster Builder.
type Default struct{}

// Build implements Builder.
func (Default) Build(text []byte, sa []int32) error {
	n := len(text)
	if len(sa) != n {
		return errs.Wrapf(errs.ErrAllocationFailure, "suffixarray: sa length %d != text length %d", len(sa), n)
	}
	if n == 0 {
		return nil
	}

	rank := make([]int32, n)
	tmp := make([]int32, n)
	idx := make([]int32, n)

	for i := 0; i < n; i++ {
		idx[i] = int32(i)
		rank[i] = int32(text[i])
	}

	less := func(k int32) func(a, b int32) bool {
		return func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			ra, rb := int32(-1), int32(-1)
			if a+k < int32(n) {
				ra = rank[a+k]
			}
			if b+k < int32(n) {
				rb = rank[b+k]
			}
			return ra < rb
		}
	}

	for k := int32(1); ; k *= 2 {
		cmp := less(k)
		sort.Slice(idx, func(i, j int) bool { return cmp(idx[i], idx[j]) })

		tmp[idx[0]] = 0
		for i := 1; i < n; i++ {
			tmp[idx[i]] = tmp[idx[i-1]]
			if cmp(idx[i-1], idx[i]) {
				tmp[idx[i]]++
			}
		}
		copy(rank, tmp)

		if int(rank[idx[n-1]]) == n-1 {
			break
		}
		if k > int32(n) {
			break
		}
	}

	copy(sa, idx)
	return nil
}
