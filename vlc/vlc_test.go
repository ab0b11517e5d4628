package vlc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNibbleSizeBoundaries(t *testing.T) {
	cases := []struct {
		val      uint32
		wantSize int
	}{
		{0, 1}, {7, 1},
		{8, 2}, {71, 2},
		{72, 3}, {583, 3},
		{584, 4}, {4679, 4},
		{4680, 5}, {37447, 5},
		{37448, 6}, {299591, 6},
		{299592, 7}, {2396743, 7},
		{2396744, 8}, {19173959, 8},
		{19173960, 9}, {153391687, 9},
		{153391688, 10}, {1227133511, 10},
		{1227133512, 11}, {1<<32 - 1, 11},
	}
	for _, c := range cases {
		require.Equal(t, c.wantSize, NibbleSize(c.val), "val=%d", c.val)
		require.Equal(t, 4*c.wantSize, NibbleBitSize(c.val), "val=%d", c.val)
	}
}

// decodeNibbles unpacks the nibbles returned by EncodeNibbles back into
// a value using the same folding NibbleAccumulator performs, without
// going through bitio — exercising the two halves of the codec
// independently of the bit-stream plumbing.
func decodeNibbles(packed uint64, count int) uint32 {
	var acc NibbleAccumulator
	for i := count - 1; i >= 0; i-- {
		nibble := uint8(packed>>(4*i)) & 0xf
		if acc.Add(nibble) {
			break
		}
	}
	return acc.Value()
}

func TestNibbleRoundTrip(t *testing.T) {
	values := []uint32{
		0, 1, 7, 8, 9, 71, 72, 73, 583, 584, 4679, 4680, 37447, 37448,
		299591, 299592, 2396743, 2396744, 19173959, 19173960,
		153391687, 153391688, 1227133511, 1227133512,
		1 << 32 - 1, 1<<31 + 12345,
	}
	for _, v := range values {
		packed, n := EncodeNibbles(v)
		require.Equal(t, NibbleSize(v), n, "val=%d", v)
		got := decodeNibbles(packed, n)
		require.Equal(t, v, got, "val=%d", v)
	}
}

func TestGR3(t *testing.T) {
	cases := []struct {
		val          uint32
		wantQuotient uint32
		wantRemain   uint32
		wantBits     int
	}{
		{0, 0, 0, 4},
		{7, 0, 7, 4},
		{8, 1, 0, 5},
		{63, 7, 7, 11},
		{64, 8, 0, 12},
	}
	for _, c := range cases {
		require.Equal(t, c.wantQuotient, GR3Quotient(c.val))
		require.Equal(t, c.wantRemain, GR3Remainder(c.val))
		require.Equal(t, c.wantBits, GR3BitSize(c.val))
		require.Equal(t, c.val, GR3Join(GR3Quotient(c.val), GR3Remainder(c.val)))
	}
}

func TestUnaryBitSize(t *testing.T) {
	require.Equal(t, 1, UnaryBitSize(0))
	require.Equal(t, 11, UnaryBitSize(10))
}

func TestVByteRoundTrip(t *testing.T) {
	values := []uint32{
		0, 1, 127, 128, 129, 16511, 16512, 16513,
		2113663, 2113664, 2113665, 270549119, 270549120, 270549121,
		1<<32 - 1,
	}
	for _, v := range values {
		n := VByteSize(v)
		enc := EncodeVByte(v)
		require.Len(t, enc, n)

		got, consumed, ok := DecodeVByte(enc)
		require.True(t, ok, "val=%d", v)
		require.Equal(t, n, consumed, "val=%d", v)
		require.Equal(t, v, got, "val=%d", v)
	}
}

func TestDecodeVByteTruncated(t *testing.T) {
	enc := EncodeVByte(16512)
	_, _, ok := DecodeVByte(enc[:len(enc)-1])
	require.False(t, ok)
}
