// Package format houses the byte layout of a property area: the region header,
// trie nodes and value records. Everything here is allocation-free and works on
// raw byte slices so the arena package can stay a thin, bounds-checked view
// over the mapped file.
package format

const (
	// AreaSize is the total size of a property area file. Regions of any other
	// size are rejected rather than partially mapped.
	AreaSize = 128 * 1024

	// AreaHeaderSize is the size of the region header that precedes the data
	// buffer. Layout (little-endian):
	//
	//	Offset  Size  Field
	//	0x00    4     bytes_used (next free data offset)
	//	0x04    4     serial
	//	0x08    4     magic
	//	0x0C    4     version
	//	0x10    112   reserved[28]
	AreaHeaderSize = 0x80

	// AreaDataSize is the capacity of the data buffer. Every offset stored in
	// the region is relative to the start of this buffer.
	AreaDataSize = AreaSize - AreaHeaderSize

	AreaBytesUsedOffset = 0x00
	AreaSerialOffset    = 0x04
	AreaMagicOffset     = 0x08
	AreaVersionOffset   = 0x0C
	AreaReservedOffset  = 0x10
	AreaReservedWords   = 28

	// AreaMagic and AreaVersion are the identifiers written by the property
	// service when it initializes a region. The engine never interprets them,
	// it only carries them through untouched.
	AreaMagic   = 0x504f5250
	AreaVersion = 0xfc6ed0ab
)

const (
	// NodeHeaderSize is the fixed part of a trie node. Layout:
	//
	//	Offset  Size  Field
	//	0x00    1     namelen
	//	0x01    3     reserved
	//	0x04    4     prop (value record offset, 0 = none)
	//	0x08    4     left sibling
	//	0x0C    4     right sibling
	//	0x10    4     children (first node of the next segment level)
	//	0x14    n+1   segment bytes, NUL terminated
	NodeHeaderSize = 0x14

	NodeNameLenOffset  = 0x00
	NodePropOffset     = 0x04
	NodeLeftOffset     = 0x08
	NodeRightOffset    = 0x0C
	NodeChildrenOffset = 0x10
	NodeNameOffset     = 0x14

	// MaxSegmentLen is the largest segment a node can hold; namelen is a u8.
	MaxSegmentLen = 0xFF
)

const (
	// ValueMax is the capacity of the value field including its terminator, so
	// a stored value holds at most ValueMax-1 bytes.
	ValueMax = 92

	// InfoHeaderSize is the fixed part of a value record. Layout:
	//
	//	Offset  Size  Field
	//	0x00    4     serial (packed metadata word, see Serial)
	//	0x04    92    value, NUL terminated
	//	0x60    n+1   full dotted name, NUL terminated
	InfoHeaderSize = 0x60

	InfoSerialOffset = 0x00
	InfoValueOffset  = 0x04
	InfoNameOffset   = 0x60
)

const (
	// RecordAlignment is the alignment of every allocation inside the data
	// buffer (sizeof(uint32_t) in the reference layout).
	RecordAlignment     = 4
	RecordAlignmentMask = RecordAlignment - 1

	// RootOffset is where the implicit root node lives. It exists in every
	// initialized region and is never handed out by the allocator.
	RootOffset = 0

	// InvalidOffset marks an absent link. It doubles as RootOffset because no
	// link can ever point back at the root.
	InvalidOffset = 0

	// SegmentSeparator splits a dotted name into trie segments.
	SegmentSeparator = '.'
)
