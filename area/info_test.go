package area

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/internal/testutil"
	"github.com/joshuapare/propkit/pkg/types"
)

// infoFixture places a value record with the given name and value right
// after the root node of an in-memory region.
func infoFixture(t *testing.T, name, value string, serial format.Serial) Info {
	t.Helper()
	b := testutil.BlankRegion(0)
	off := testutil.RootNodeSize
	rec := b[format.AreaHeaderSize+off:]
	format.PutU32(rec, format.InfoSerialOffset, uint32(serial))
	copy(rec[format.InfoValueOffset:], value)
	copy(rec[format.InfoNameOffset:], name)

	a := FromBytes("mem", b, true, nil)
	info, err := a.InfoAt(Ref(off))
	require.NoError(t, err)
	return info
}

func TestInfo_Read(t *testing.T) {
	info := infoFixture(t, "ro.debuggable", "1", format.Serial(0x01010005))

	value, length, long, count := info.Read()
	require.Equal(t, []byte("1"), value)
	require.Equal(t, 1, length)
	require.True(t, long)
	require.Equal(t, uint32(5), count)
	require.Equal(t, "ro.debuggable", string(info.Name()))
}

func TestInfo_SetValue(t *testing.T) {
	info := infoFixture(t, "persist.x", "hello world", format.Serial(0x0B01002A))

	changed, err := info.SetValue([]byte("bye"))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "bye", string(info.Value()))
	// old tail bytes cleared
	require.Equal(t, make([]byte, format.ValueMax-3), info.raw[format.InfoValueOffset+3:format.InfoValueOffset+format.ValueMax])
	require.Equal(t, format.Serial(0x0301002A), info.Serial())

	// same value again is a no-op
	changed, err = info.SetValue([]byte("bye"))
	require.NoError(t, err)
	require.False(t, changed)

	// nil is a no-op
	changed, err = info.SetValue(nil)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestInfo_SetValueEmpty(t *testing.T) {
	info := infoFixture(t, "persist.x", "abc", format.Serial(0x03000000))

	changed, err := info.SetValue([]byte{})
	require.NoError(t, err)
	require.True(t, changed)
	require.Empty(t, info.Value())
	require.Equal(t, 0, info.Serial().ValueLen())
}

func TestInfo_SetValueTooLong(t *testing.T) {
	info := infoFixture(t, "persist.x", "abc", format.Serial(0x03000000))

	long := make([]byte, format.ValueMax)
	for i := range long {
		long[i] = 'a'
	}
	changed, err := info.SetValue(long)
	require.False(t, changed)
	require.True(t, types.IsKind(err, types.ErrKindValidation))
	require.Equal(t, "abc", string(info.Value()))

	changed, err = info.SetValue(long[:format.ValueMax-1])
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, format.ValueMax-1, info.Serial().ValueLen())
	require.Equal(t, "persist.x", string(info.Name()))
}

func TestInfo_SetCount(t *testing.T) {
	info := infoFixture(t, "persist.x", "v", format.Serial(0x01010007))

	changed, err := info.SetCount(format.CountUnset)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, uint32(7), info.Count())

	changed, err = info.SetCount(7)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = info.SetCount(9)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, format.Serial(0x01010009), info.Serial())
}

func TestInfo_UpdateAttemptsBoth(t *testing.T) {
	info := infoFixture(t, "persist.x", "same", format.Serial(0x04000001))

	// value unchanged, count changed: still reported
	changed, err := info.Update([]byte("same"), 2)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, uint32(2), info.Count())

	// value changed, count unchanged
	changed, err = info.Update([]byte("new!!"), 2)
	require.NoError(t, err)
	require.True(t, changed)

	// both changed in one call
	changed, err = info.Update([]byte("z"), 3)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "z", string(info.Value()))
	require.Equal(t, format.Serial(0x01000003), info.Serial())

	// neither
	changed, err = info.Update(nil, format.CountUnset)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestInfo_SetValueRejectsNUL(t *testing.T) {
	info := infoFixture(t, "persist.x", "ab", format.Serial(0x02000000))

	for i := 0; i < 2; i++ {
		changed, err := info.SetValue([]byte("ab\x00cd"))
		require.False(t, changed)
		require.True(t, types.IsKind(err, types.ErrKindValidation))
	}
	require.Equal(t, "ab", string(info.Value()))
	require.Equal(t, 2, info.Serial().ValueLen())
}

func TestInfo_UpdateCountDespiteBadValue(t *testing.T) {
	info := infoFixture(t, "persist.x", "v", format.Serial(0x01000001))

	changed, err := info.Update([]byte("x\x00y"), 5)
	require.True(t, types.IsKind(err, types.ErrKindValidation))
	require.True(t, changed)
	require.Equal(t, uint32(5), info.Count())
	require.Equal(t, "v", string(info.Value()))
	require.Equal(t, format.Serial(0x01000005), info.Serial())
}
