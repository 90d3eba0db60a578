package alloc

import (
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/area"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
)

// Bump is the append-only allocator over one region.
//
// Key characteristics:
//   - O(1) initialization: the pointer lives in the region header
//   - O(1) allocation: check, bump, zero, copy
//   - No free path: records live as long as the region
type Bump struct {
	a   *area.Area
	log *zap.Logger
}

// NewBump creates an allocator for a. The region must be writable.
func NewBump(a *area.Area, log *zap.Logger) (*Bump, error) {
	if !a.Writable() {
		return nil, types.Errorf(types.ErrKindPermission, area.ErrReadOnly, "allocate in %s", a.Path())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bump{a: a, log: log}, nil
}

// Used returns the current allocation pointer.
func (b *Bump) Used() uint32 { return b.a.BytesUsed() }

// Free returns how many bytes are left in the data buffer.
func (b *Bump) Free() uint32 {
	used := b.a.BytesUsed()
	if used >= format.AreaDataSize {
		return 0
	}
	return format.AreaDataSize - used
}

// AllocNode allocates a trie node holding segment and returns its view.
func (b *Bump) AllocNode(segment []byte) (area.Node, error) {
	if len(segment) > format.MaxSegmentLen {
		return area.Node{}, types.Errorf(types.ErrKindValidation, format.ErrSegmentTooLong,
			"segment %q is %d bytes", segment, len(segment))
	}
	ref, raw, err := b.alloc(format.NodeSize(len(segment)))
	if err != nil {
		return area.Node{}, err
	}
	format.PutU8(raw, format.NodeNameLenOffset, uint8(len(segment)))
	copy(raw[format.NodeNameOffset:], segment)
	raw[format.NodeNameOffset+len(segment)] = 0
	return b.a.NodeAt(ref)
}

// AllocInfo allocates an empty value record carrying the full dotted name.
// Its metadata word starts at zero: empty value, counter 0.
func (b *Bump) AllocInfo(name []byte) (area.Info, error) {
	ref, raw, err := b.alloc(format.InfoSize(len(name)))
	if err != nil {
		return area.Info{}, err
	}
	copy(raw[format.InfoNameOffset:], name)
	raw[format.InfoNameOffset+len(name)] = 0
	return b.a.InfoAt(ref)
}

// alloc reserves size bytes at the pointer, zeroes them and advances the
// pointer. On failure the pointer is left untouched.
func (b *Bump) alloc(size int) (area.Ref, []byte, error) {
	used := int(b.a.BytesUsed())
	if used < format.NodeSize(0) || used > format.AreaDataSize {
		return 0, nil, types.Errorf(types.ErrKindFormat, ErrCorruptHeader,
			"%s: bytes_used 0x%x", b.a.Path(), used)
	}
	if used+size > format.AreaDataSize {
		b.log.Warn("not enough space in property area",
			zap.String("path", b.a.Path()),
			zap.Int("total", format.AreaDataSize),
			zap.Int("used", used),
			zap.Int("need", size))
		return 0, nil, types.Errorf(types.ErrKindCapacity, ErrNoSpace,
			"%s: total %d, used %d, need %d", b.a.Path(), format.AreaDataSize, used, size)
	}
	raw := b.a.Data()[used : used+size]
	clear(raw)
	if err := b.a.SetBytesUsed(uint32(used + size)); err != nil {
		return 0, nil, err
	}
	b.a.MarkDirty(used, size)
	return area.Ref(used), raw, nil
}
