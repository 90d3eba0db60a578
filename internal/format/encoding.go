package format

import "encoding/binary"

// Property areas are written by the host's property service in native byte
// order. Every supported target is little-endian, so the helpers below fix the
// order instead of probing it at runtime.

// ReadU8 returns the byte at off.
func ReadU8(b []byte, off int) uint8 {
	return b[off]
}

// PutU8 writes v at off.
func PutU8(b []byte, off int, v uint8) {
	b[off] = v
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}
