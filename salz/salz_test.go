package salz

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src []byte) {
	t.Helper()

	dst := make([]byte, EncodedLenMax(len(src)))
	n, err := Encode(dst, src, nil, nil)
	require.NoError(t, err)

	plain := make([]byte, len(src))
	got, err := Decode(plain, dst[:n])
	require.NoError(t, err)
	require.Equal(t, len(src), got)
	require.True(t, bytes.Equal(src, plain))
}

func TestRoundTripMinimalInput(t *testing.T) {
	roundTrip(t, []byte("01234567"))
}

func TestRoundTripAllLiterals(t *testing.T) {
	roundTrip(t, []byte("abcdefgh"))
}

func TestRoundTripHighlyRepetitive(t *testing.T) {
	src := bytes.Repeat([]byte("abcabcabcabcabcabc"), 50)
	roundTrip(t, src)
}

func TestRoundTripRunLengthShortOffset(t *testing.T) {
	src := bytes.Repeat([]byte("x"), 200)
	roundTrip(t, src)
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	src := make([]byte, 4096)
	rng.Read(src)
	roundTrip(t, src)
}

func TestRoundTripMixedText(t *testing.T) {
	src := []byte(`the quick brown fox jumps over the lazy dog. the quick brown fox jumps again. ` +
		`pack my box with five dozen liquor jugs, pack my box with five dozen liquor jugs.`)
	roundTrip(t, src)
}

func TestEncodeShortInputFallsBackToPlain(t *testing.T) {
	roundTrip(t, []byte("abc"))
}

func TestEncodeInsufficientDestination(t *testing.T) {
	src := []byte("0123456789abcdef")
	dst := make([]byte, 2)
	_, err := Encode(dst, src, nil, nil)
	require.Error(t, err)
}

func TestDecodeMalformedHeader(t *testing.T) {
	_, err := Decode(make([]byte, 8), []byte{0, 0})
	require.Error(t, err)
}

func TestEncodeStatsPopulated(t *testing.T) {
	src := bytes.Repeat([]byte("statistics "), 100)
	dst := make([]byte, EncodedLenMax(len(src)))
	var stats Stats
	_, err := Encode(dst, src, nil, &stats)
	require.NoError(t, err)
	require.True(t, stats.SATime >= 0)
	require.True(t, stats.EmitTime >= 0)
	require.Greater(t, stats.FactorCount, 0)
	require.Greater(t, stats.LCPMean, 0.0)
}
