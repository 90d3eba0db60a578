package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 4: 4, 5: 8, 21: 24, 24: 24, 25: 28}
	for in, want := range cases {
		require.Equal(t, want, Align4(in), "Align4(%d)", in)
	}
}

func TestRecordSizes(t *testing.T) {
	// root node: empty segment
	require.Equal(t, 24, NodeSize(0))
	// "ro" -> 20 + 2 + 1 = 23 -> 24
	require.Equal(t, 24, NodeSize(2))
	// "build" -> 20 + 5 + 1 = 26 -> 28
	require.Equal(t, 28, NodeSize(5))
	// "ro.a" -> 96 + 4 + 1 = 101 -> 104
	require.Equal(t, 104, InfoSize(4))
}

func TestLayoutConstants(t *testing.T) {
	require.Equal(t, 131072, AreaSize)
	require.Equal(t, 128, AreaHeaderSize)
	require.Equal(t, AreaSize-AreaHeaderSize, AreaDataSize)
	require.Equal(t, AreaReservedOffset+AreaReservedWords*4, AreaHeaderSize)
	require.Equal(t, InfoValueOffset+ValueMax, InfoHeaderSize)
}
