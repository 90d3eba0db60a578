package area

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/internal/mmfile"
	"github.com/joshuapare/propkit/pkg/types"
)

// Ref is an offset into a region's data buffer. It is only meaningful for the
// Area it came from and is validated every time it is dereferenced.
type Ref uint32

// IsNil reports whether r is the absent-link sentinel.
func (r Ref) IsNil() bool { return r == format.InvalidOffset }

var (
	// ErrOutOfBounds indicates a Ref that points past the data buffer.
	ErrOutOfBounds = errors.New("area: offset out of bounds")
	// ErrReadOnly indicates a write against a region mapped read-only.
	ErrReadOnly = errors.New("area: region mapped read-only")
	// ErrClosed indicates use of a closed region.
	ErrClosed = errors.New("area: region closed")
)

// DirtyTracker receives the file ranges written through an Area.
type DirtyTracker interface {
	// Add marks [off, off+length) of the file as dirty.
	Add(off, length int)
}

// Area is an opened property area, backed by a shared mapping.
type Area struct {
	path     string
	data     []byte // whole file, len == format.AreaSize
	writable bool
	unmap    func() error
	dt       DirtyTracker
}

// Open maps the region at path. The file must be exactly format.AreaSize
// bytes; anything else is a format error and nothing stays mapped. A region
// that cannot be opened for lack of permission yields an ErrKindPermission
// error so callers can retry read-only.
func Open(path string, writable bool) (*Area, error) {
	data, unmap, err := mmfile.Map(path, writable, format.AreaSize)
	if err != nil {
		switch {
		case errors.Is(err, mmfile.ErrSize):
			return nil, types.Errorf(types.ErrKindFormat, err, "open region %s", path)
		case errors.Is(err, fs.ErrPermission):
			return nil, types.Errorf(types.ErrKindPermission, err, "open region %s", path)
		default:
			return nil, fmt.Errorf("open region %s: %w", path, err)
		}
	}
	return FromBytes(path, data, writable, unmap), nil
}

// FromBytes wraps an already mapped (or in-memory) region. unmap may be nil.
// The caller guarantees len(data) == format.AreaSize.
func FromBytes(path string, data []byte, writable bool, unmap func() error) *Area {
	return &Area{path: path, data: data, writable: writable, unmap: unmap}
}

// Close unmaps the region. Views obtained from it must not be used afterward.
func (a *Area) Close() error {
	if a == nil || a.data == nil {
		return nil
	}
	var err error
	if a.unmap != nil {
		err = a.unmap()
	}
	a.data = nil
	a.dt = nil
	return err
}

// Path returns the file the region was opened from.
func (a *Area) Path() string { return a.path }

// Writable reports whether the region was mapped read-write.
func (a *Area) Writable() bool { return a.writable }

// Bytes returns the whole mapping, header included.
func (a *Area) Bytes() []byte { return a.data }

// Data returns the data buffer that all Refs are relative to.
func (a *Area) Data() []byte {
	if a.data == nil {
		return nil
	}
	return a.data[format.AreaHeaderSize:]
}

// SetTracker routes every subsequent write through dt.
func (a *Area) SetTracker(dt DirtyTracker) { a.dt = dt }

// MarkDirty records a write of n bytes at data offset off with the tracker.
func (a *Area) MarkDirty(off, n int) {
	if a.dt != nil {
		a.dt.Add(format.AreaHeaderSize+off, n)
	}
}

// ---- header ----

// BytesUsed returns the allocation pointer: the next free data offset.
func (a *Area) BytesUsed() uint32 { return format.ReadU32(a.data, format.AreaBytesUsedOffset) }

// SetBytesUsed stores the allocation pointer. Only the allocator calls this.
func (a *Area) SetBytesUsed(v uint32) error {
	if err := a.checkWritable(); err != nil {
		return err
	}
	format.PutU32(a.data, format.AreaBytesUsedOffset, v)
	if a.dt != nil {
		a.dt.Add(format.AreaBytesUsedOffset, 4)
	}
	return nil
}

// Serial returns the region-wide serial word.
func (a *Area) Serial() uint32 { return format.ReadU32(a.data, format.AreaSerialOffset) }

// Magic returns the format magic.
func (a *Area) Magic() uint32 { return format.ReadU32(a.data, format.AreaMagicOffset) }

// Version returns the format version.
func (a *Area) Version() uint32 { return format.ReadU32(a.data, format.AreaVersionOffset) }

// Capacity returns the size of the data buffer.
func (a *Area) Capacity() uint32 { return format.AreaDataSize }

// Header is a copy of the region header fields.
type Header struct {
	BytesUsed uint32 `json:"bytes_used"`
	Serial    uint32 `json:"serial"`
	Magic     uint32 `json:"magic"`
	Version   uint32 `json:"version"`
	Capacity  uint32 `json:"capacity"`
}

// Header returns a snapshot of the header.
func (a *Area) Header() Header {
	return Header{
		BytesUsed: a.BytesUsed(),
		Serial:    a.Serial(),
		Magic:     a.Magic(),
		Version:   a.Version(),
		Capacity:  a.Capacity(),
	}
}

// ---- views ----

// Root returns the implicit root node at offset 0.
func (a *Area) Root() (Node, error) { return a.NodeAt(format.RootOffset) }

// NodeAt returns the trie node at ref.
func (a *Area) NodeAt(ref Ref) (Node, error) {
	raw, err := a.slice(ref, format.NodeHeaderSize)
	if err != nil {
		return Node{}, err
	}
	return Node{a: a, ref: ref, raw: raw}, nil
}

// InfoAt returns the value record at ref.
func (a *Area) InfoAt(ref Ref) (Info, error) {
	raw, err := a.slice(ref, format.InfoHeaderSize)
	if err != nil {
		return Info{}, err
	}
	return Info{a: a, ref: ref, raw: raw}, nil
}

// slice bounds-checks ref against the data buffer and returns everything from
// ref to the end of the buffer, guaranteed to hold at least fixed bytes.
func (a *Area) slice(ref Ref, fixed int) ([]byte, error) {
	if a.data == nil {
		return nil, ErrClosed
	}
	data := a.Data()
	off := int(ref)
	if off >= len(data) || !buf.Has(data, off, fixed) {
		return nil, types.Errorf(types.ErrKindFormat, ErrOutOfBounds,
			"%s: offset 0x%x (limit 0x%x)", a.path, off, len(data))
	}
	return data[off:], nil
}

func (a *Area) checkWritable() error {
	if a.data == nil {
		return ErrClosed
	}
	if !a.writable {
		return types.Errorf(types.ErrKindPermission, ErrReadOnly, "%s", a.path)
	}
	return nil
}
