package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf, 0)

	bits := []uint8{1, 0, 1, 1, 0, 0, 0, 1, 1, 1, 0, 1}
	for _, b := range bits {
		require.True(t, w.WriteBit(b))
	}
	w.Finalize()

	r := NewReader(buf, 0)
	for _, want := range bits {
		got, ok := r.ReadBit()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestBitsRoundTrip(t *testing.T) {
	buf := make([]byte, 128)
	w := NewWriter(buf, 0)

	vals := []struct {
		v     uint64
		count uint
	}{
		{0x3, 2}, {0x1f, 5}, {0xabc, 12}, {0x1, 1}, {0xffffffff, 32},
		{0x123456789abcdef, 60}, {0, 7},
	}
	for _, tc := range vals {
		require.True(t, w.WriteBits(tc.v, tc.count))
	}
	w.Finalize()

	r := NewReader(buf, 0)
	for _, tc := range vals {
		got, ok := r.ReadBits(tc.count)
		require.True(t, ok)
		require.Equal(t, tc.v&mask(tc.count), got)
	}
}

func TestUnaryRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf, 0)

	vals := []uint32{0, 1, 5, 63, 70, 200}
	for _, v := range vals {
		require.True(t, w.WriteUnary(v))
	}
	w.Finalize()

	r := NewReader(buf, 0)
	for _, want := range vals {
		got, ok := r.ReadUnary()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestGR3RoundTrip(t *testing.T) {
	buf := make([]byte, 128)
	w := NewWriter(buf, 0)

	vals := []uint32{0, 1, 7, 8, 63, 64, 1000, 5000}
	for _, v := range vals {
		require.True(t, w.WriteGR3(v))
	}
	w.Finalize()

	r := NewReader(buf, 0)
	for _, want := range vals {
		got, ok := r.ReadGR3()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestVNibbleRoundTrip(t *testing.T) {
	buf := make([]byte, 256)
	w := NewWriter(buf, 0)

	vals := []uint32{0, 7, 8, 71, 72, 4679, 4680, 1<<32 - 1, 19173960}
	for _, v := range vals {
		require.True(t, w.WriteVNibble(v))
	}
	w.Finalize()

	r := NewReader(buf, 0)
	for _, want := range vals {
		got, ok := r.ReadVNibble()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestHeaderReservedBytesUntouched(t *testing.T) {
	buf := make([]byte, 32)
	buf[0], buf[1], buf[2], buf[3] = 0xde, 0xad, 0xbe, 0xef
	w := NewWriter(buf, 4)
	require.True(t, w.WriteBits(0x1, 1))
	w.Finalize()

	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf[:4])
}

func TestWriteU8Interleaved(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf, 0)

	require.True(t, w.WriteBits(0x5, 4))
	require.True(t, w.WriteU8('x'))
	require.True(t, w.WriteBits(0xa, 4))
	w.Finalize()

	r := NewReader(buf, 0)
	v, ok := r.ReadBits(4)
	require.True(t, ok)
	require.Equal(t, uint64(0x5), v)

	b, ok := r.ReadU8()
	require.True(t, ok)
	require.Equal(t, byte('x'), b)
}

func TestInsufficientDestination(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf, 0)
	for i := 0; i < 64; i++ {
		require.True(t, w.WriteBit(1))
	}
	require.False(t, w.WriteBit(1))
}
