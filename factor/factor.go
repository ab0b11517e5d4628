// Package factor turns a text's PSV/NSV arrays into, for every
// position, the two candidate LZ factors (one backward match against
// the previous-smaller-value position, one against the next-smaller-
// value position) that parse.Optimize chooses between.
package factor

import "math/bits"

// Arena holds the per-position factor candidates as a flat int32
// array, 4 entries per text position: PSVOffset, PSVLen, NSVOffset,
// NSVLen, in that order — mirroring the reference implementation's
// layout so the cost table built on top of it (see package parse) can
// walk it without an intermediate struct slice.
type Arena []int32

const (
	fieldPSVOffset = 0
	fieldPSVLen    = 1
	fieldNSVOffset = 2
	fieldNSVLen    = 3
	fieldsPerPos   = 4
)

// NewArena allocates an Arena sized for a text of length n.
func NewArena(n int) Arena {
	return make(Arena, fieldsPerPos*n)
}

func (a Arena) PSVOffset(pos int) int32 { return a[fieldsPerPos*pos+fieldPSVOffset] }
func (a Arena) PSVLen(pos int) int32    { return a[fieldsPerPos*pos+fieldPSVLen] }
func (a Arena) NSVOffset(pos int) int32 { return a[fieldsPerPos*pos+fieldNSVOffset] }
func (a Arena) NSVLen(pos int) int32    { return a[fieldsPerPos*pos+fieldNSVLen] }

func (a Arena) set(pos int, psvOffs, psvLen, nsvOffs, nsvLen int32) {
	base := fieldsPerPos * pos
	a[base+fieldPSVOffset] = psvOffs
	a[base+fieldPSVLen] = psvLen
	a[base+fieldNSVOffset] = nsvOffs
	a[base+fieldNSVLen] = nsvLen
}

// SetPSV overwrites a position's PSV candidate in place.
func (a Arena) SetPSV(pos int, offs, length int32) {
	base := fieldsPerPos * pos
	a[base+fieldPSVOffset] = offs
	a[base+fieldPSVLen] = length
}

// SetNSV overwrites a position's NSV candidate in place.
func (a Arena) SetNSV(pos int, offs, length int32) {
	base := fieldsPerPos * pos
	a[base+fieldNSVOffset] = offs
	a[base+fieldNSVLen] = length
}

// lcpCmp extends a match between pos1 and pos2 (pos2 > pos1) starting
// from a known common prefix length, 8 bytes at a time via XOR and a
// trailing-zero count, falling back to a byte-at-a-time tail compare.
func lcpCmp(text []byte, commonLen, pos1, pos2 int) int {
	n := len(text)
	length := commonLen

	for pos2+length+8 <= n {
		val1 := leU64(text, pos1+length)
		val2 := leU64(text, pos2+length)
		diff := val1 ^ val2
		if diff != 0 {
			return length + bits.TrailingZeros64(diff)/8
		}
		length += 8
	}

	for pos2+length < n && text[pos1+length] == text[pos2+length] {
		length++
	}

	return length
}

func leU64(b []byte, pos int) uint64 {
	_ = b[pos+7]
	return uint64(b[pos]) | uint64(b[pos+1])<<8 | uint64(b[pos+2])<<16 | uint64(b[pos+3])<<24 |
		uint64(b[pos+4])<<32 | uint64(b[pos+5])<<40 | uint64(b[pos+6])<<48 | uint64(b[pos+7])<<56
}

// Build computes factor candidates for every position of text (whose
// effective length, for matching purposes, is already clipped to
// n = len(psv) = len(nsv) by the caller — salz.Encode reserves the
// trailing 8 bytes of a block as unconditional literals and excludes
// them here, same as the reference implementation). Position 0 is
// always forced to a length-1 literal, since it can have no backward
// match.
func Build(text []byte, psv, nsv []int32) Arena {
	n := len(psv)
	a := NewArena(n)
	if n == 0 {
		return a
	}

	a.set(0, 0, 1, 0, 1)

	var prevPSV, prevNSV int32 = -1, -1
	var prevPSVLen, prevNSVLen int

	for pos := 1; pos < n; pos++ {
		p := psv[pos]
		v := nsv[pos]

		var psvLen, nsvLen int
		if p != -1 {
			commonLen := prevPSVLen
			if prevPSVLen == 0 {
				commonLen = 0
			} else {
				commonLen--
			}
			psvLen = lcpCmp(text, commonLen, int(p), pos)
		}
		if v != -1 {
			commonLen := prevNSVLen
			if prevNSVLen == 0 {
				commonLen = 0
			} else {
				commonLen--
			}
			nsvLen = lcpCmp(text, commonLen, int(v), pos)
		}

		prevPSV, prevPSVLen = p, psvLen
		prevNSV, prevNSVLen = v, nsvLen

		psvOffs := int32(pos) - prevPSV
		nsvOffs := int32(pos) - prevNSV

		a.set(pos, psvOffs, int32(psvLen), nsvOffs, int32(nsvLen))
	}

	return a
}
