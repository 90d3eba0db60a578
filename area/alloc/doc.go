// Package alloc carves trie nodes and value records out of a property area's
// data buffer.
//
// The region's allocator is a pure bump pointer: bytes_used in the header is
// the next free offset, every allocation advances it by the record's size
// aligned to 4 bytes, and nothing is ever freed or reused. This mirrors what
// the platform's property service does, so regions stay readable by it after
// we have written to them.
//
// Allocation is not transactional. When a caller allocates several records
// and a later one fails, the earlier ones stay allocated.
package alloc
