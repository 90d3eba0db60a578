// Package area provides low-level access to property area regions.
//
// # Overview
//
// A property area is a fixed-size (128 KiB) file, normally living under
// /dev/__properties__, that the platform's property service maps shared into
// every process. It holds a 128-byte header followed by a data buffer in
// which trie nodes and value records are carved out by a bump allocator. All
// links inside the buffer are byte offsets relative to its start.
//
// # File Structure
//
//	[header 0x80] [root node @0] [node|record] [node|record] ... [free]
//
// # Opening a Region
//
//	a, err := area.Open("/dev/__properties__/u:object_r:vold_prop:s0", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	root, err := a.Root()
//
// Regions are mapped read-only unless writable is requested, in which case
// they are mapped read-write and shared so stores are immediately visible to
// the other processes mapping the same file.
//
// # Zero-Copy Design
//
// Node and Info are views over the mapped bytes. Accessors read straight from
// the mapping and setters write straight into it; nothing is cached, so a
// view always reflects what other writers last stored.
//
// # Thread Safety
//
// None. The region is shared with processes this package does not coordinate
// with; a record update is not atomic with respect to their reads, and two
// writers allocating at once can corrupt bytes_used. Callers that need more
// must serialize externally.
//
// # Related Packages
//
//   - github.com/joshuapare/propkit/area/alloc: bump allocation of nodes and records
//   - github.com/joshuapare/propkit/area/dirty: msync of written ranges
//   - github.com/joshuapare/propkit/trie: name resolution and walking
package area
