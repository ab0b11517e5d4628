// Package salz implements the SALZ block codec: a suffix-array-driven
// LZ factorization with cost-optimal parse selection, emitted as a
// bit-interleaved token stream. Encode/Decode operate on a single
// block at a time; streaming across block boundaries, random access,
// and cross-block parallelism inside a single call are explicitly out
// of scope — a host wanting to compress something larger than one
// block splits it itself (see package job) and frames the resulting
// segments (see package salzfile).
package salz

import (
	"time"

	"github.com/akiutoslahti/go-salz/bitio"
	"github.com/akiutoslahti/go-salz/common/errs"
	"github.com/akiutoslahti/go-salz/factor"
	"github.com/akiutoslahti/go-salz/parse"
	"github.com/akiutoslahti/go-salz/psvnsv"
	"github.com/akiutoslahti/go-salz/suffixarray"
)

// tailReserve is the number of trailing input bytes excluded from
// matching and always emitted as literals, guaranteeing every factor
// copy can safely read/write 8 bytes at a time.
const tailReserve = 8

// MinInputLen is the shortest input Encode will attempt to factorize;
// anything shorter is stored as a plain segment instead.
const MinInputLen = tailReserve

// EncodedLenMax returns the worst-case encoded length of a plainLen-byte
// block: the 4-byte header, the plain bytes themselves (the plain
// fallback), plus the bit-accumulator slots interleaved through it.
func EncodedLenMax(plainLen int) int {
	return headerLen + plainLen + roundUp(plainLen, 64)/8
}

func roundUp(n, mult int) int {
	return (n + mult - 1) / mult * mult
}

// Encode compresses src into dst, returning the number of bytes
// written. dst must have length at least EncodedLenMax(len(src)).
// builder is used to construct the suffix array driving factorization;
// a nil builder uses suffixarray.Default. stats, if non-nil, is
// populated with per-phase timing.
func Encode(dst, src []byte, builder suffixarray.Builder, stats *Stats) (int, error) {
	if len(dst) < headerLen {
		return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination too short for header")
	}

	// Factorization needs tailReserve spare bytes past every match
	// candidate; inputs shorter than that carry nothing worth
	// matching against, so store them as a plain segment outright
	// rather than reject them.
	if len(src) < MinInputLen {
		if len(src)+headerLen > len(dst) {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination too short for plain fallback")
		}
		copy(dst[headerLen:], src)
		putHeader(dst, streamTypePlain, len(src))
		return headerLen + len(src), nil
	}
	if builder == nil {
		builder = suffixarray.Default{}
	}

	matchLen := len(src) - tailReserve
	text := src[:matchLen]

	t0 := time.Now()
	paddedSA := make([]int32, matchLen+2)
	sa := paddedSA[1 : matchLen+1]
	if err := builder.Build(text, sa); err != nil {
		return 0, errs.Wrapf(errs.ErrSuffixArrayFailed, "salz: suffix array construction: %v", err)
	}
	paddedSA[0] = -1
	paddedSA[matchLen+1] = -1
	stats.trackSA(t0)
	if stats != nil {
		stats.LCPMean = computeLCPMean(text, sa)
	}

	t1 := time.Now()
	psv, nsv := psvnsv.Build(paddedSA, matchLen)
	stats.trackPSVNSV(t1)

	t2 := time.Now()
	arena := factor.Build(text, psv, nsv)
	stats.trackFactor(t2)

	t3 := time.Now()
	parsed := parse.Optimize(arena, matchLen)
	stats.trackParse(t3)

	t4 := time.Now()
	w := bitio.NewWriter(dst, headerLen)
	pos := 0
	factorCount := 0
	for pos < matchLen {
		length := parsed.Length[pos]
		if length == 1 {
			if !w.WriteBit(tokenLiteral) || !w.WriteU8(src[pos]) {
				return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination exhausted emitting literal")
			}
			pos++
			factorCount++
			continue
		}
		if !writeFactor(w, parsed.Offset[pos], length) {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination exhausted emitting factor")
		}
		pos += int(length)
		factorCount++
	}

	for i := 0; i < tailReserve; i++ {
		if !w.WriteBit(tokenLiteral) || !w.WriteU8(src[matchLen+i]) {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination exhausted emitting tail literal")
		}
		factorCount++
	}

	w.Finalize()
	stats.trackEmit(t4)
	if stats != nil {
		stats.FactorCount = factorCount
	}

	bodyLen := w.Pos() - headerLen

	if bodyLen > len(src) {
		if len(src) > 0x00ffffff {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: plain body %d bytes exceeds 24-bit length field", len(src))
		}
		if len(src)+headerLen > len(dst) {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: destination too short for plain fallback")
		}
		copy(dst[headerLen:], src)
		putHeader(dst, streamTypePlain, len(src))
		return headerLen + len(src), nil
	}

	if bodyLen > 0x00ffffff {
		return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: encoded body %d bytes exceeds 24-bit length field", bodyLen)
	}

	putHeader(dst, streamTypeSalz, bodyLen)
	return w.Pos(), nil
}

// Decode decompresses src into dst, returning the number of bytes
// written. dst is a capacity, not an exact size: it must be at least
// as long as the original plain segment, but may be longer.
func Decode(dst, src []byte) (int, error) {
	streamType, bodyLen, ok := getHeader(src)
	if !ok {
		return 0, errs.Wrapf(errs.ErrMalformedStream, "salz: invalid segment header")
	}
	body := src[headerLen : headerLen+bodyLen]

	if streamType == streamTypePlain {
		if len(body) > len(dst) {
			return 0, errs.Wrapf(errs.ErrInsufficientDestination, "salz: plain body larger than destination")
		}
		copy(dst, body)
		return len(body), nil
	}

	// cpyFactor can overwrite up to 7 bytes past the logical output
	// position; decode into a scratch buffer with that headroom and
	// copy the logical prefix out, rather than replicate the
	// reference implementation's raw pointer overrun into dst itself.
	scratch := make([]byte, len(dst)+tailReserve)
	r := bitio.NewReader(src, headerLen)
	end := headerLen + bodyLen
	pos := 0

	for r.Pos() < end {
		token, ok := r.ReadBit()
		if !ok {
			return 0, errs.Wrapf(errs.ErrMalformedStream, "salz: truncated token")
		}

		if token == tokenLiteral {
			b, ok := r.ReadU8()
			if !ok || pos >= len(dst) {
				return 0, errs.Wrapf(errs.ErrMalformedStream, "salz: truncated literal")
			}
			scratch[pos] = b
			pos++
			continue
		}

		offs, length, ok := readFactor(r)
		if !ok {
			return 0, errs.Wrapf(errs.ErrMalformedStream, "salz: truncated factor")
		}
		if pos+int(length) > len(dst) || int(offs) > pos {
			return 0, errs.Wrapf(errs.ErrMalformedStream, "salz: factor out of range")
		}
		cpyFactor(scratch, pos, int(offs), int(length))
		pos += int(length)
	}

	copy(dst, scratch[:pos])
	return pos, nil
}

// computeLCPMean reports the mean longest-common-prefix length between
// suffix-array-adjacent suffixes of text, via the standard phi/PLCP
// construction (Kasai et al.): phi[i] gives the SA-predecessor of
// position i, and PLCP is recovered from phi in a single left-to-right
// pass that never lets the running match length drop by more than one
// per step.
func computeLCPMean(text []byte, sa []int32) float64 {
	n := len(sa)
	if n < 2 {
		return 0
	}

	phi := make([]int32, n)
	phi[sa[0]] = -1
	for i := 1; i < n; i++ {
		phi[sa[i]] = sa[i-1]
	}

	plcp := make([]int32, n)
	l := 0
	for i := 0; i < n; i++ {
		p := int(phi[i])
		for p >= 0 && i+l < n && p+l < n && text[i+l] == text[p+l] {
			l++
		}
		plcp[i] = int32(l)
		if l > 0 {
			l--
		}
	}

	var sum uint64
	for i := 1; i < n; i++ {
		sum += uint64(plcp[sa[i]])
	}
	return float64(sum) / float64(n-1)
}

const (
	tokenLiteral uint8 = 0
	tokenFactor  uint8 = 1
)

func writeFactor(w *bitio.Writer, offs, length int32) bool {
	if !w.WriteBit(tokenFactor) {
		return false
	}
	adj := uint32(offs) - factor.MinOffset
	if !w.WriteVNibble(adj>>8) || !w.WriteU8(byte(adj&0xff)) {
		return false
	}
	return w.WriteGR3(uint32(length) - factor.MinLength)
}

func readFactor(r *bitio.Reader) (offs, length int32, ok bool) {
	hi, ok := r.ReadVNibble()
	if !ok {
		return 0, 0, false
	}
	lo, ok := r.ReadU8()
	if !ok {
		return 0, 0, false
	}
	offs = int32((hi<<8)|uint32(lo)) + factor.MinOffset

	l, ok := r.ReadGR3()
	if !ok {
		return 0, 0, false
	}
	length = int32(l) + factor.MinLength

	return offs, length, true
}

// inc1/inc2 let the first 8 bytes of a sub-8-byte-offset (and hence
// potentially self-overlapping, RLE-like) factor be copied safely in
// one 4+4 byte step: inc1 gives the read offset for the second 4-byte
// half, inc2 gives how far the source pointer has effectively advanced
// once that half has been written.
var inc1 = [8]int{0, 1, 2, 1, 4, 4, 4, 4}
var inc2 = [8]int{0, 1, 2, 2, 4, 3, 2, 1}

func cpyFactor(dst []byte, pos, offs, length int) {
	d := pos
	s := pos - offs
	end := pos + length

	if offs < 8 {
		dst[d+0] = dst[s+0]
		dst[d+1] = dst[s+1]
		dst[d+2] = dst[s+2]
		dst[d+3] = dst[s+3]
		copy(dst[d+4:d+8], dst[s+inc1[offs]:s+inc1[offs]+4])
		s += inc2[offs]
		d += 8
	}

	for d < end {
		copy(dst[d:d+8], dst[s:s+8])
		d += 8
		s += 8
	}
}
