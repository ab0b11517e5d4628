package factor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akiutoslahti/go-salz/psvnsv"
	"github.com/akiutoslahti/go-salz/suffixarray"
)

// buildRealPSVNSV runs the actual SA + PSV/NSV construction pipeline
// salz.Encode uses, so factor.Build sees the same shape of input it
// would in production (the common-length shortcut in lcpCmp relies on
// psv/nsv actually coming from a suffix array).
func buildRealPSVNSV(t *testing.T, text []byte) (psv, nsv []int32) {
	t.Helper()
	n := len(text)
	padded := make([]int32, n+2)
	require.NoError(t, (suffixarray.Default{}).Build(text, padded[1:n+1]))
	padded[0], padded[n+1] = -1, -1
	return psvnsv.Build(padded, n)
}

// bruteLCP is an independent (non-chunked) longest-common-prefix
// computation used as an oracle against lcpCmp/Build.
func bruteLCP(text []byte, pos1, pos2 int) int {
	n := len(text)
	l := 0
	for pos2+l < n && text[pos1+l] == text[pos2+l] {
		l++
	}
	return l
}

func TestBuildPositionZeroForcedLiteral(t *testing.T) {
	text := []byte("abcabc")
	psv, nsv := buildRealPSVNSV(t, text)

	a := Build(text, psv, nsv)
	require.Equal(t, int32(0), a.PSVOffset(0))
	require.Equal(t, int32(1), a.PSVLen(0))
	require.Equal(t, int32(0), a.NSVOffset(0))
	require.Equal(t, int32(1), a.NSVLen(0))
}

func TestBuildMatchesBruteForceLCP(t *testing.T) {
	text := []byte("abcabcabcabc the quick brown fox the quick fox")
	psv, nsv := buildRealPSVNSV(t, text)

	a := Build(text, psv, nsv)
	for pos := 1; pos < len(text); pos++ {
		if p := psv[pos]; p != -1 {
			require.Equal(t, int32(bruteLCP(text, int(p), pos)), a.PSVLen(pos), "psv mismatch at pos %d", pos)
			require.Equal(t, int32(pos)-p, a.PSVOffset(pos))
		}
		if v := nsv[pos]; v != -1 {
			require.Equal(t, int32(bruteLCP(text, int(v), pos)), a.NSVLen(pos), "nsv mismatch at pos %d", pos)
			require.Equal(t, int32(pos)-v, a.NSVOffset(pos))
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	a := Build(nil, nil, nil)
	require.Empty(t, a)
}

func TestLcpCmpSpansEightByteChunks(t *testing.T) {
	text := append([]byte("0123456789ABCDEF"), []byte("0123456789ABCDEF")...)
	require.Equal(t, 16, lcpCmp(text, 0, 0, 16))
}

func TestLcpCmpDiverges(t *testing.T) {
	text := []byte("aaaaaaaaaaaaaaaaY") // 16 a's then Y
	require.Equal(t, 8, lcpCmp(text, 0, 0, 8))
}
