package area

import (
	"github.com/joshuapare/propkit/internal/buf"
	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
)

// Link names one of the four offset fields of a trie node.
type Link int

const (
	LinkProp     Link = iota // value record
	LinkLeft                 // smaller sibling
	LinkRight                // larger sibling
	LinkChildren             // first node of the next segment level
)

func (l Link) fieldOffset() int {
	switch l {
	case LinkProp:
		return format.NodePropOffset
	case LinkLeft:
		return format.NodeLeftOffset
	case LinkRight:
		return format.NodeRightOffset
	default:
		return format.NodeChildrenOffset
	}
}

func (l Link) String() string {
	switch l {
	case LinkProp:
		return "prop"
	case LinkLeft:
		return "left"
	case LinkRight:
		return "right"
	case LinkChildren:
		return "children"
	default:
		return "link?"
	}
}

// Node is a zero-copy view of one trie node.
type Node struct {
	a   *Area
	ref Ref
	raw []byte // from the node to the end of the data buffer
}

// Ref returns the node's own offset.
func (n Node) Ref() Ref { return n.ref }

// NameLen returns the segment length byte.
func (n Node) NameLen() int { return int(format.ReadU8(n.raw, format.NodeNameLenOffset)) }

// Name returns the node's segment. The slice aliases the mapping; it is
// clamped to the data buffer when a corrupt namelen would run past it.
func (n Node) Name() []byte {
	name, ok := buf.Slice(n.raw, format.NodeNameOffset, n.NameLen())
	if !ok {
		return n.raw[format.NodeNameOffset:]
	}
	return name
}

// Link returns the offset stored in field l.
func (n Node) Link(l Link) Ref { return Ref(format.ReadU32(n.raw, l.fieldOffset())) }

// Prop returns the value record offset, 0 when the node has no value.
func (n Node) Prop() Ref { return n.Link(LinkProp) }

// Left returns the smaller sibling.
func (n Node) Left() Ref { return n.Link(LinkLeft) }

// Right returns the larger sibling.
func (n Node) Right() Ref { return n.Link(LinkRight) }

// Children returns the first node of the next level.
func (n Node) Children() Ref { return n.Link(LinkChildren) }

// SetLink stores ref into field l.
func (n Node) SetLink(l Link, ref Ref) error {
	if err := n.a.checkWritable(); err != nil {
		return err
	}
	if int(ref) >= format.AreaDataSize {
		return types.Errorf(types.ErrKindFormat, ErrOutOfBounds, "link %s to 0x%x", l, uint32(ref))
	}
	off := l.fieldOffset()
	format.PutU32(n.raw, off, uint32(ref))
	n.a.MarkDirty(int(n.ref)+off, 4)
	return nil
}
