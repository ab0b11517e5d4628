// Package salzfile frames a sequence of independently salz-encoded
// segments into a single on-disk stream: an 8-byte file header
// followed by a run of length-prefixed segments until EOF. It knows
// nothing about the salz wire format itself — a segment is an opaque
// blob handed to it by package job and, on the way back out, handed
// straight to salz.Decode.
package salzfile

import (
	"encoding/binary"
	"io"

	"github.com/akiutoslahti/go-salz/common/errs"
)

// Magic identifies a salzfile stream. Stored little-endian, it puts
// the bytes 53 41 4C 5A ("SALZ") at the start of the file.
const Magic uint32 = 0x5a4c4153

// HeaderLen is the size of the file header: 4-byte magic, 4-byte block
// size.
const HeaderLen = 8

// Header is the fixed 8-byte preamble of a salzfile stream.
type Header struct {
	// BlockSize is the plain (pre-compression) size each segment was
	// cut from, except possibly the final, shorter segment.
	BlockSize uint32
}

// WriteHeader writes hdr to w.
func WriteHeader(w io.Writer, hdr Header) error {
	var buf [HeaderLen]byte
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], hdr.BlockSize)
	_, err := w.Write(buf[:])
	if err != nil {
		return errs.Wrapf(errs.ErrMalformedStream, "salzfile: write header: %v", err)
	}
	return nil
}

// ReadHeader reads and validates the file header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, errs.Wrapf(errs.ErrMalformedStream, "salzfile: read header: %v", err)
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return Header{}, errs.Wrapf(errs.ErrMalformedStream, "salzfile: bad magic %#x", magic)
	}
	return Header{BlockSize: binary.LittleEndian.Uint32(buf[4:8])}, nil
}

// WriteSegment writes one length-prefixed segment to w.
func WriteSegment(w io.Writer, segment []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(segment)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return errs.Wrapf(errs.ErrMalformedStream, "salzfile: write segment length: %v", err)
	}
	if _, err := w.Write(segment); err != nil {
		return errs.Wrapf(errs.ErrMalformedStream, "salzfile: write segment: %v", err)
	}
	return nil
}

// ReadSegment reads the next length-prefixed segment from r into a
// freshly allocated slice. It returns io.EOF, unwrapped, when r is
// exhausted exactly at a segment boundary — the normal end of stream.
func ReadSegment(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errs.Wrapf(errs.ErrMalformedStream, "salzfile: read segment length: %v", err)
	}
	segLen := binary.LittleEndian.Uint32(lenBuf[:])
	segment := make([]byte, segLen)
	if _, err := io.ReadFull(r, segment); err != nil {
		return nil, errs.Wrapf(errs.ErrMalformedStream, "salzfile: read segment: %v", err)
	}
	return segment, nil
}
