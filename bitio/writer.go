// Package bitio implements the bit-interleaved I/O stream shared by
// the salz encoder and decoder: bits are packed MSB-first into 64-bit
// accumulators that are reserved in-line in the destination/source
// byte buffer as they fill, rather than buffered separately and
// appended at the end. This lets literal and factor bytes live in the
// same flat buffer as the bit-packed tokens that describe them.
package bitio

import (
	"encoding/binary"

	"github.com/akiutoslahti/go-salz/vlc"
)

// Writer packs bits MSB-first into 64-bit slots reserved in-line in a
// fixed destination buffer. The zero value is not usable; construct
// with NewWriter.
type Writer struct {
	dst     []byte
	pos     int
	bitsPos int
	bits    uint64
	avail   uint
}

// NewWriter returns a Writer that appends to dst starting at pos. The
// bytes before pos (e.g. a stream header) are left untouched.
func NewWriter(dst []byte, pos int) *Writer {
	return &Writer{dst: dst, pos: pos, bitsPos: -1}
}

// Pos reports the next free byte offset in dst, i.e. the position
// past the most recently reserved accumulator slot and any raw bytes
// written after it.
func (w *Writer) Pos() int {
	return w.pos
}

// reserve claims the next 8 bytes of dst as the in-progress
// accumulator slot.
func (w *Writer) reserve() bool {
	if w.pos+8 > len(w.dst) {
		return false
	}
	w.bitsPos = w.pos
	w.pos += 8
	w.bits = 0
	w.avail = 64
	return true
}

// flush writes out the current accumulator (if one has been reserved)
// and reserves the next slot.
func (w *Writer) flush() bool {
	if w.bitsPos < 0 {
		return w.reserve()
	}
	binary.LittleEndian.PutUint64(w.dst[w.bitsPos:], w.bits)
	return w.reserve()
}

// WriteU8 writes a raw, unpacked byte — used for the literal bytes
// that sit alongside the bit-packed token stream.
func (w *Writer) WriteU8(val byte) bool {
	if w.pos >= len(w.dst) {
		return false
	}
	w.dst[w.pos] = val
	w.pos++
	return true
}

// WriteBit writes the low bit of val.
func (w *Writer) WriteBit(val uint8) bool {
	if w.avail == 0 && !w.flush() {
		return false
	}
	w.bits = (w.bits << 1) | uint64(val&1)
	w.avail--
	return true
}

// WriteBits writes the low count bits of bits, most significant bit
// first. count must be <= 64.
func (w *Writer) WriteBits(bits uint64, count uint) bool {
	if w.avail == 0 && !w.flush() {
		return false
	}

	if count > w.avail {
		w.bits = (w.bits << w.avail) | ((bits >> (count - w.avail)) & mask(w.avail))
		count -= w.avail
		if !w.flush() {
			return false
		}
	}

	w.bits = (w.bits << count) | (bits & mask(count))
	w.avail -= count
	return true
}

// WriteZeros writes count zero bits.
func (w *Writer) WriteZeros(count uint) bool {
	for count > 0 {
		if w.avail == 0 && !w.flush() {
			return false
		}
		n := count
		if w.avail < n {
			n = w.avail
		}
		w.bits <<= n
		w.avail -= n
		count -= n
	}
	return true
}

// WriteUnary writes val as val zero bits followed by a terminating one
// bit.
func (w *Writer) WriteUnary(val uint32) bool {
	if !w.WriteZeros(uint(val)) {
		return false
	}
	return w.WriteBit(1)
}

// WriteGR3 writes val using Golomb-Rice coding with k=3: val>>3 coded
// unary, followed by the 3 fixed remainder bits.
func (w *Writer) WriteGR3(val uint32) bool {
	if !w.WriteUnary(val >> 3) {
		return false
	}
	return w.WriteBits(uint64(val&0x7), 3)
}

// WriteVNibble writes val using the vnibble coding.
func (w *Writer) WriteVNibble(val uint32) bool {
	nibbles, count := vlc.EncodeNibbles(val)
	return w.WriteBits(nibbles, uint(count)*4)
}

// Finalize flushes the in-progress accumulator, left-justifying its
// filled bits and zero-padding the remainder, and returns the byte
// offset the accumulator was written at. It must be called exactly
// once, after the last Write call, before the buffer is read back.
func (w *Writer) Finalize() int {
	if w.bitsPos < 0 {
		w.reserve()
	}
	w.bits <<= w.avail
	binary.LittleEndian.PutUint64(w.dst[w.bitsPos:], w.bits)
	return w.bitsPos
}

func mask(count uint) uint64 {
	if count >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << count) - 1
}
