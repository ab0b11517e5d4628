package bitio

import (
	"encoding/binary"
	"math/bits"

	"github.com/akiutoslahti/go-salz/vlc"
)

// Reader unpacks bits MSB-first from 64-bit slots read in-line from a
// source buffer, mirroring Writer. The zero value is not usable;
// construct with NewReader.
type Reader struct {
	src   []byte
	pos   int
	bits  uint64
	avail uint
}

// NewReader returns a Reader over src starting at pos.
func NewReader(src []byte, pos int) *Reader {
	return &Reader{src: src, pos: pos}
}

// Pos reports the next unread byte offset in src.
func (r *Reader) Pos() int {
	return r.pos
}

// queue reads the next 8-byte accumulator slot.
func (r *Reader) queue() bool {
	if r.pos+8 > len(r.src) {
		return false
	}
	r.bits = binary.LittleEndian.Uint64(r.src[r.pos:])
	r.pos += 8
	r.avail = 64
	return true
}

// ReadU8 reads one raw, unpacked byte.
func (r *Reader) ReadU8() (val byte, ok bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	val = r.src[r.pos]
	r.pos++
	return val, true
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (val uint8, ok bool) {
	if r.avail == 0 && !r.queue() {
		return 0, false
	}
	val = uint8(r.bits >> 63)
	r.bits <<= 1
	r.avail--
	return val, true
}

// ReadBits reads count bits (count <= 64), most significant bit first.
func (r *Reader) ReadBits(count uint) (val uint64, ok bool) {
	if r.avail == 0 && !r.queue() {
		return 0, false
	}

	if count <= r.avail {
		val = r.bits >> (64 - count)
		r.bits <<= count
		r.avail -= count
		return val, true
	}

	val = r.bits >> (64 - r.avail)
	count -= r.avail

	if !r.queue() {
		return 0, false
	}

	val = (val << count) | (r.bits >> (64 - count))
	r.bits <<= count
	r.avail -= count
	return val, true
}

// ReadUnary reads a unary-coded value: a run of zero bits terminated
// by a one bit, the run length being the value.
func (r *Reader) ReadUnary() (val uint32, ok bool) {
	if r.avail == 0 && !r.queue() {
		return 0, false
	}

	for r.bits == 0 {
		val += uint32(r.avail)
		if !r.queue() {
			return 0, false
		}
	}

	lead := uint(bits.LeadingZeros64(r.bits))
	r.bits <<= lead + 1
	r.avail -= lead + 1
	val += uint32(lead)

	return val, true
}

// ReadGR3 reads a Golomb-Rice k=3 coded value.
func (r *Reader) ReadGR3() (val uint32, ok bool) {
	q, ok := r.ReadUnary()
	if !ok {
		return 0, false
	}
	rem, ok := r.ReadBits(3)
	if !ok {
		return 0, false
	}
	return vlc.GR3Join(q, uint32(rem)), true
}

// ReadVNibble reads a vnibble-coded value.
func (r *Reader) ReadVNibble() (val uint32, ok bool) {
	var acc vlc.NibbleAccumulator
	for {
		bits, ok := r.ReadBits(4)
		if !ok {
			return 0, false
		}
		if acc.Add(uint8(bits)) {
			return acc.Value(), true
		}
	}
}

