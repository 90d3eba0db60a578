package format

// Serial is the packed metadata word at the head of every value record.
//
//	bits 24..31  value length
//	bits 17..23  untouched by this engine
//	bit  16      long-value flag
//	bits  0..15  application counter, CountUnset means "no counter"
//
// The sub-fields share one word on disk, so they are only ever changed through
// the With* helpers which rewrite one bit range and keep the rest.
type Serial uint32

const (
	SerialLenShift  = 24
	SerialLenMask   = 0xFF000000
	SerialLongFlag  = 1 << 16
	SerialCountMask = 0x0000FFFF

	// CountUnset is the sentinel counter value. Passing it to a count update
	// leaves the stored counter alone.
	CountUnset = 0xFFFF
)

// ValueLen returns the value length sub-field.
func (s Serial) ValueLen() int {
	return int(uint32(s) >> SerialLenShift)
}

// IsLong reports whether the long-value flag is set.
func (s Serial) IsLong() bool {
	return uint32(s)&SerialLongFlag != 0
}

// Count returns the low 16-bit counter.
func (s Serial) Count() uint32 {
	return uint32(s) & SerialCountMask
}

// WithValueLen returns s with bits 24..31 replaced by n. Bits 0..23 are kept.
func (s Serial) WithValueLen(n uint8) Serial {
	return Serial(uint32(s)&^SerialLenMask | uint32(n)<<SerialLenShift)
}

// WithCount returns s with the low 16 bits replaced by count. The high half,
// including the length and long flag, is kept.
func (s Serial) WithCount(count uint32) Serial {
	return Serial(uint32(s)&^SerialCountMask | count&SerialCountMask)
}
