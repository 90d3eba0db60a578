// Package dirty tracks the byte ranges written into a mapped property area and
// flushes them to the backing file.
//
// Writes into a shared mapping are visible to other mappers immediately; the
// flush only matters for regions backed by a real file system. Ranges are
// page-aligned and coalesced before being handed to msync.
package dirty

import (
	"context"
	"sort"

	"github.com/joshuapare/propkit/area"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 16

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// Range represents a dirty byte range (absolute file offsets).
type Range struct {
	Off int64 // Absolute offset in file
	Len int64 // Length in bytes
}

// Tracker accumulates dirty ranges and flushes them.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	a        *area.Area
	ranges   []Range
	pageSize int64
}

// NewTracker creates a tracker for a and installs it as the region's tracker.
func NewTracker(a *area.Area) *Tracker {
	t := &Tracker{
		a:        a,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
	a.SetTracker(t)
	return t
}

// Add records a dirty range.
func (t *Tracker) Add(off, length int) {
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Pending reports whether anything has been written since the last flush.
func (t *Tracker) Pending() bool { return len(t.ranges) > 0 }

// Flush msyncs every dirty page and clears the tracked ranges.
//
// The context is checked between ranges. If cancelled part way, some pages
// may already have been flushed; the ranges are kept so a later Flush retries.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := t.a.Bytes()
	if len(data) == 0 {
		return nil
	}
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start, end := int(r.Off), int(r.Off+r.Len)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}
		if err := msync(data[start:end]); err != nil {
			return err
		}
	}
	t.ranges = t.ranges[:0]
	return nil
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
