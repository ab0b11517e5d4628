// Package vlc implements the variable-length integer codings shared by
// the salz bit stream: vnibble (little-endian continuation, used for
// factor offsets), vbyte (big-endian continuation; the salz segment
// header stores its length as a raw 24-bit field, so nothing in the
// stream uses vbyte), unary, and Golomb-Rice with k=3 (used for factor
// lengths).
//
// vnibble, unary and gr3 are interleaved into the bit-accumulator
// stream and so are written/read through bitio.Writer/bitio.Reader,
// which use the sizing and bit-packing helpers in this package. vbyte
// is whole-byte oriented and is encoded/decoded directly here.
package vlc

// vnibbleBounds[i] is the exclusive upper bound of values encodable in
// i+1 nibbles. Each nibble after the first subtracts 1 from its 3-bit
// payload to remove representation redundancy, so the ranges grow by
// a factor of 8 plus a constant each step. The last entry is capped at
// the largest uint32, which itself still takes 11 nibbles.
var vnibbleBounds = [11]uint32{
	8, 72, 584, 4680, 37448, 299592, 2396744, 19173960, 153391688, 1227133512, 1<<32 - 1,
}

// NibbleSize returns the number of nibbles (1..11) needed to encode v
// with vnibble.
func NibbleSize(v uint32) int {
	for i, bound := range vnibbleBounds {
		if v < bound {
			return i + 1
		}
	}
	return len(vnibbleBounds)
}

// NibbleBitSize returns the number of bits (4*NibbleSize(v)) needed to
// encode v with vnibble.
func NibbleBitSize(v uint32) int {
	return 4 * NibbleSize(v)
}

// EncodeNibbles packs v into its vnibble representation and returns
// the nibbles byte-packed little-endian in a uint64 (nibble 0, the
// terminator, in the lowest 4 bits; each following nibble 4 bits
// higher) along with the nibble count. Pass (nibbles, count*4) to
// bitio.Writer.WriteBits, whose MSB-first convention then emits the
// highest nibble first and the flagged terminator last, matching the
// reference bit layout.
func EncodeNibbles(v uint32) (nibbles uint64, count int) {
	n := NibbleSize(v)

	// Nibbles come in pairs derived from a rebased value: pair j uses
	// base = v - vnibbleBounds[2j-1] (base = v for the first pair).
	// Within a pair the first (even-indexed) nibble is base's next 3
	// bits; the second (odd-indexed), when present, is the following
	// 3 bits minus 1 — this is the redundancy-removal step, since that
	// combination could otherwise also be reached with one fewer pair.
	var vals [11]uint32
	for pair := 0; 2*pair < n; pair++ {
		base := v
		if pair > 0 {
			base -= vnibbleBounds[2*pair-1]
		}
		shift := uint(6 * pair)
		vals[2*pair] = (base >> shift) & 0x7
		if 2*pair+1 < n {
			vals[2*pair+1] = ((base >> (shift + 3)) - 1) & 0x7
		}
	}

	var out uint64
	for k := n - 1; k >= 0; k-- {
		nib := uint64(vals[k])
		if k == 0 {
			nib |= 0x8
		}
		out = (out << 4) | nib
	}

	return out, n
}

// NibbleAccumulator folds successively-read vnibble nibbles into a
// decoded value, mirroring read_vnibble in the reference implementation.
// Zero value is ready to use.
type NibbleAccumulator struct {
	val uint32
	n   int
}

// Add folds in one nibble (low 4 bits significant) and reports whether
// it was the terminating nibble (high bit set).
func (a *NibbleAccumulator) Add(nibble uint8) (done bool) {
	if a.n == 0 {
		a.val = uint32(nibble & 0x7)
	} else {
		a.val = ((a.val + 1) << 3) | uint32(nibble&0x7)
	}
	a.n++
	return nibble&0x8 != 0
}

// Value returns the decoded integer once Add has reported done.
func (a *NibbleAccumulator) Value() uint32 {
	return a.val
}

// GR3BitSize returns the number of bits gr3(v) occupies: (v>>3) unary
// zero bits, a unary terminator bit, and 3 fixed remainder bits.
func GR3BitSize(v uint32) int {
	return int(v>>3) + 1 + 3
}

// GR3Quotient and GR3Remainder split v for Golomb-Rice k=3 coding.
func GR3Quotient(v uint32) uint32  { return v >> 3 }
func GR3Remainder(v uint32) uint32 { return v & 0x7 }

// GR3Join reassembles a value from its unary quotient and 3-bit
// remainder, as read off the bit stream.
func GR3Join(quotient uint32, remainder uint32) uint32 {
	return (quotient << 3) | (remainder & 0x7)
}

// UnaryBitSize returns the number of bits needed to unary-code n: n
// zero bits followed by a single terminating one bit.
func UnaryBitSize(n uint32) int {
	return int(n) + 1
}

// vbyte boundaries, in bytes 1..5; see EncodeVByte.
var vbyteBounds = [5]uint32{128, 16512, 2113664, 270549120, 1<<32 - 1}

// VByteSize returns the number of bytes (1..5) needed to encode v with
// vbyte.
func VByteSize(v uint32) int {
	for i, bound := range vbyteBounds {
		if v < bound {
			return i + 1
		}
	}
	return len(vbyteBounds)
}

// EncodeVByte returns the big-endian vbyte encoding of v: the high bit
// of the final byte terminates the sequence, and every byte but the
// last carries a cumulative offset-subtracted prefix of v to remove
// representation redundancy between lengths.
func EncodeVByte(v uint32) []byte {
	switch {
	case v < 128:
		return []byte{byte(v) | 0x80}
	case v < 16512:
		return []byte{
			byte((v - 128) >> 7),
			byte(v&0x7f) | 0x80,
		}
	case v < 2113664:
		return []byte{
			byte((v - 16512) >> 14),
			byte((v - 128) >> 7 & 0x7f),
			byte(v&0x7f) | 0x80,
		}
	case v < 270549120:
		return []byte{
			byte((v - 2113664) >> 21),
			byte((v - 16512) >> 14 & 0x7f),
			byte((v - 128) >> 7 & 0x7f),
			byte(v&0x7f) | 0x80,
		}
	default:
		return []byte{
			byte((v - 270549120) >> 28),
			byte((v - 2113664) >> 21 & 0x7f),
			byte((v - 16512) >> 14 & 0x7f),
			byte((v - 128) >> 7 & 0x7f),
			byte(v&0x7f) | 0x80,
		}
	}
}

// DecodeVByte decodes a big-endian vbyte value from the start of buf,
// returning the value and the number of bytes consumed, or ok=false if
// buf doesn't contain a terminated sequence within 5 bytes. It is the
// exact inverse of EncodeVByte.
func DecodeVByte(buf []byte) (val uint32, n int, ok bool) {
	var v uint32
	for i := 0; i < len(buf) && i < 5; i++ {
		b := buf[i]
		if b&0x80 != 0 {
			v = (v << 7) | uint32(b&0x7f)
			return v, i + 1, true
		}
		v = (v << 7) | uint32(b)
		v++
	}
	return 0, 0, false
}
