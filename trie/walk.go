package trie

import (
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/area"
	"github.com/joshuapare/propkit/internal/format"
)

const (
	// initialStackCapacity covers the usual name depth with room for the
	// sibling subtrees pending at each level.
	initialStackCapacity = 64

	bitsPerUint64 = 64
)

// visited tracks node offsets already expanded. Every allocation is
// 4-aligned, so one bit per alignment unit is enough.
type visited []uint64

func newVisited() visited {
	bits := format.AreaDataSize / format.RecordAlignment
	return make(visited, (bits+bitsPerUint64-1)/bitsPerUint64)
}

// mark records ref and reports whether it was already present.
func (v visited) mark(ref area.Ref) bool {
	idx := uint32(ref) / format.RecordAlignment
	w, b := idx/bitsPerUint64, idx%bitsPerUint64
	if int(w) >= len(v) {
		return true
	}
	seen := v[w]&(1<<b) != 0
	v[w] |= 1 << b
	return seen
}

// VisitFunc receives each populated value record. Returning an error stops
// the walk and Walk returns it.
type VisitFunc func(info area.Info) error

// Walk visits every populated value record reachable from the root: a node's
// own record first, then its left subtree, right subtree and children.
//
// Offsets that fall outside the region, and nodes reached twice, are logged
// and skipped so one damaged branch does not hide the rest of the region.
func (t *Trie) Walk(fn VisitFunc) error {
	seen := newVisited()
	stack := make([]area.Ref, 0, initialStackCapacity)
	stack = append(stack, format.RootOffset)

	// The root sits at offset 0, which doubles as the nil link, so it is
	// pushed explicitly and never reached through a link.
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen.mark(ref) {
			t.log.Warn("node reached twice, skipping",
				zap.String("path", t.a.Path()),
				zap.Uint32("offset", uint32(ref)))
			continue
		}
		n, err := t.a.NodeAt(ref)
		if err != nil {
			t.log.Warn("bad node offset",
				zap.String("path", t.a.Path()),
				zap.Uint32("offset", uint32(ref)),
				zap.Error(err))
			continue
		}

		if p := n.Prop(); !p.IsNil() {
			info, err := t.a.InfoAt(p)
			if err != nil {
				t.log.Warn("bad value record offset",
					zap.String("path", t.a.Path()),
					zap.Uint32("offset", uint32(p)),
					zap.Error(err))
			} else if err := fn(info); err != nil {
				return err
			}
		}

		// Pushed in reverse so left is expanded first.
		for _, l := range [...]area.Link{area.LinkChildren, area.LinkRight, area.LinkLeft} {
			if next := n.Link(l); !next.IsNil() {
				stack = append(stack, next)
			}
		}
	}
	return nil
}

// Names returns the full name of every populated record in walk order.
func (t *Trie) Names() ([]string, error) {
	var names []string
	err := t.Walk(func(info area.Info) error {
		names = append(names, string(info.Name()))
		return nil
	})
	return names, err
}
