package suffixarray

import (
	"bytes"
	"sort"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// bruteForceSA builds a suffix array by literally sorting every suffix,
// used as an oracle to check Default's rank-doubling construction.
func bruteForceSA(text []byte) []int32 {
	n := len(text)
	idx := make([]int32, n)
	for i := range idx {
		idx[i] = int32(i)
	}
	sort.Slice(idx, func(i, j int) bool {
		return bytes.Compare(text[idx[i]:], text[idx[j]:]) < 0
	})
	return idx
}

func checkAgainstBruteForce(t *testing.T, text string) {
	t.Helper()
	sa := make([]int32, len(text))
	require.NoError(t, (Default{}).Build([]byte(text), sa))
	require.Equal(t, bruteForceSA([]byte(text)), sa)
}

func TestDefaultBuildSimple(t *testing.T) {
	checkAgainstBruteForce(t, "banana")
}

func TestDefaultBuildRepeated(t *testing.T) {
	checkAgainstBruteForce(t, "aaaaaaaaaa")
}

func TestDefaultBuildMixed(t *testing.T) {
	checkAgainstBruteForce(t, "abracadabra abracadabra")
}

func TestDefaultBuildEmpty(t *testing.T) {
	sa := make([]int32, 0)
	require.NoError(t, (Default{}).Build(nil, sa))
}

func TestDefaultBuildLengthMismatch(t *testing.T) {
	sa := make([]int32, 3)
	err := (Default{}).Build([]byte("ab"), sa)
	require.Error(t, err)
}

func TestMockBuilderSatisfiesInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewMockBuilder(ctrl)
	m.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil)

	var b Builder = m
	require.NoError(t, b.Build([]byte("x"), make([]int32, 1)))
}
