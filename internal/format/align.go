package format

// Align4 returns n aligned up to the next 4-byte boundary.
//
// Example:
//
//	Align4(21) = 24
//	Align4(24) = 24
//	Align4(25) = 28
func Align4(n int) int {
	return (n + RecordAlignmentMask) & ^RecordAlignmentMask
}

// NodeSize returns the aligned allocation size of a trie node holding a
// segment of segLen bytes.
func NodeSize(segLen int) int {
	return Align4(NodeHeaderSize + segLen + 1)
}

// InfoSize returns the aligned allocation size of a value record whose full
// dotted name is nameLen bytes long.
func InfoSize(nameLen int) int {
	return Align4(InfoHeaderSize + nameLen + 1)
}
