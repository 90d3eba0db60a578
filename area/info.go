package area

import (
	"bytes"

	"go.uber.org/multierr"

	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
)

// Info is a zero-copy view of one value record.
type Info struct {
	a   *Area
	ref Ref
	raw []byte // from the record to the end of the data buffer
}

// Ref returns the record's own offset.
func (i Info) Ref() Ref { return i.ref }

// Serial returns the packed metadata word.
func (i Info) Serial() format.Serial {
	return format.Serial(format.ReadU32(i.raw, format.InfoSerialOffset))
}

// Value returns the stored value up to its terminator.
func (i Info) Value() []byte {
	return buf.CString(i.raw[format.InfoValueOffset : format.InfoValueOffset+format.ValueMax])
}

// Name returns the full dotted name stored behind the value field.
func (i Info) Name() []byte {
	return buf.CString(i.raw[format.InfoNameOffset:])
}

// Count returns the counter sub-field.
func (i Info) Count() uint32 { return i.Serial().Count() }

// Read returns a copy of the value together with the decoded metadata.
func (i Info) Read() (value []byte, length int, long bool, count uint32) {
	s := i.Serial()
	return bytes.Clone(i.Value()), s.ValueLen(), s.IsLong(), s.Count()
}

// SetValue replaces the stored value. It reports false, writing nothing, when
// v is nil or already equal to the stored value. Only the length sub-field of
// the metadata word changes; the long flag and counter are kept.
//
// Values of format.ValueMax bytes or more, and values holding a NUL byte, are
// rejected before any byte is written.
func (i Info) SetValue(v []byte) (bool, error) {
	if v == nil {
		return false, nil
	}
	if len(v) >= format.ValueMax {
		return false, types.Errorf(types.ErrKindValidation, nil,
			"value is %d bytes, need less than %d", len(v), format.ValueMax)
	}
	if bytes.IndexByte(v, 0) >= 0 {
		return false, types.Errorf(types.ErrKindValidation, nil, "value contains a NUL byte")
	}
	if bytes.Equal(v, i.Value()) {
		return false, nil
	}
	if err := i.a.checkWritable(); err != nil {
		return false, err
	}
	field := i.raw[format.InfoValueOffset : format.InfoValueOffset+format.ValueMax]
	clear(field[:len(i.Value())])
	copy(field, v)
	field[len(v)] = 0
	i.putSerial(i.Serial().WithValueLen(uint8(len(v))))
	i.a.MarkDirty(int(i.ref)+format.InfoValueOffset, format.ValueMax)
	return true, nil
}

// SetCount replaces the low 16 bits of the metadata word. It reports false
// when count is format.CountUnset or already stored.
func (i Info) SetCount(count uint32) (bool, error) {
	if count == format.CountUnset || i.Count() == count {
		return false, nil
	}
	if err := i.a.checkWritable(); err != nil {
		return false, err
	}
	i.putSerial(i.Serial().WithCount(count))
	return true, nil
}

// Update applies a value update and a count update. Both are always attempted,
// even when the first fails; the result reports whether either one changed the
// record and the errors of both are combined. A nil value leaves the value
// alone, format.CountUnset leaves the counter alone.
func (i Info) Update(value []byte, count uint32) (bool, error) {
	valueChanged, verr := i.SetValue(value)
	countChanged, cerr := i.SetCount(count)
	return valueChanged || countChanged, multierr.Append(verr, cerr)
}

func (i Info) putSerial(s format.Serial) {
	format.PutU32(i.raw, format.InfoSerialOffset, uint32(s))
	i.a.MarkDirty(int(i.ref)+format.InfoSerialOffset, 4)
}
