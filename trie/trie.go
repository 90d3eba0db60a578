package trie

import (
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/area"
	"github.com/joshuapare/propkit/area/alloc"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
)

// maxHops bounds a single sibling search. A well-formed level can never hold
// more nodes than fit in the data buffer.
const maxHops = format.AreaDataSize / format.NodeHeaderSize

// ConfirmFunc is asked once, before the first allocation of a create, whether
// name may be added. Returning false aborts with nothing allocated.
type ConfirmFunc func(name string) bool

// Trie resolves names in one region.
type Trie struct {
	a    *area.Area
	log  *zap.Logger
	bump *alloc.Bump
}

// New returns a Trie over a. A nil logger discards output.
func New(a *area.Area, log *zap.Logger) *Trie {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trie{a: a, log: log}
}

// Area returns the region the trie reads.
func (t *Trie) Area() *area.Area { return t.a }

// Find returns the value record for name, or an ErrKindNotFound error.
func (t *Trie) Find(name string) (area.Info, error) {
	return t.resolve(name, false, nil)
}

// FindOrCreate returns the value record for name, allocating the missing
// nodes and the record when needed. confirm may be nil to always create.
func (t *Trie) FindOrCreate(name string, confirm ConfirmFunc) (area.Info, error) {
	return t.resolve(name, true, confirm)
}

// creator gates allocation behind a single confirmation per resolve.
type creator struct {
	t       *Trie
	name    string
	confirm ConfirmFunc
	asked   bool
}

func (c *creator) ready() error {
	if c.asked {
		return nil
	}
	c.asked = true
	if c.confirm != nil && !c.confirm(c.name) {
		return types.Errorf(types.ErrKindNotFound, ErrDeclined, "%s", c.name)
	}
	if c.t.bump == nil {
		b, err := alloc.NewBump(c.t.a, c.t.log)
		if err != nil {
			return err
		}
		c.t.bump = b
	}
	return nil
}

func (t *Trie) resolve(name string, create bool, confirm ConfirmFunc) (area.Info, error) {
	segs, err := Split(name)
	if err != nil {
		return area.Info{}, err
	}
	var c *creator
	if create {
		c = &creator{t: t, name: name, confirm: confirm}
	}

	node, err := t.a.Root()
	if err != nil {
		return area.Info{}, err
	}
	for _, seg := range segs {
		node, err = t.child(node, seg, c)
		if err != nil {
			return area.Info{}, err
		}
	}

	if p := node.Prop(); !p.IsNil() {
		return t.a.InfoAt(p)
	}
	if c == nil {
		return area.Info{}, notFound(name)
	}
	if err := c.ready(); err != nil {
		return area.Info{}, err
	}
	info, err := t.bump.AllocInfo([]byte(name))
	if err != nil {
		return area.Info{}, err
	}
	if err := node.SetLink(area.LinkProp, info.Ref()); err != nil {
		return area.Info{}, err
	}
	t.log.Debug("created value record",
		zap.String("name", name),
		zap.Uint32("offset", uint32(info.Ref())))
	return info, nil
}

// child finds seg among parent's children, linking a new node into the
// level when c is non-nil and the segment is missing.
func (t *Trie) child(parent area.Node, seg []byte, c *creator) (area.Node, error) {
	ref := parent.Children()
	if ref.IsNil() {
		if c == nil {
			return area.Node{}, notFound(string(seg))
		}
		return t.attach(parent, area.LinkChildren, seg, c)
	}

	for hops := 0; hops < maxHops; hops++ {
		cur, err := t.a.NodeAt(ref)
		if err != nil {
			return area.Node{}, err
		}
		cmp := Compare(seg, cur.Name())
		if cmp == 0 {
			return cur, nil
		}
		side := area.LinkLeft
		if cmp > 0 {
			side = area.LinkRight
		}
		next := cur.Link(side)
		if next.IsNil() {
			if c == nil {
				return area.Node{}, notFound(string(seg))
			}
			return t.attach(cur, side, seg, c)
		}
		ref = next
	}
	return area.Node{}, types.Errorf(types.ErrKindFormat, ErrCycle,
		"%s: searching %q under 0x%x", t.a.Path(), seg, uint32(parent.Ref()))
}

func (t *Trie) attach(at area.Node, side area.Link, seg []byte, c *creator) (area.Node, error) {
	if err := c.ready(); err != nil {
		return area.Node{}, err
	}
	n, err := t.bump.AllocNode(seg)
	if err != nil {
		return area.Node{}, err
	}
	if err := at.SetLink(side, n.Ref()); err != nil {
		return area.Node{}, err
	}
	return n, nil
}

func notFound(what string) error {
	return types.Errorf(types.ErrKindNotFound, nil, "%s not found", what)
}
