package trie

import "errors"

var (
	// ErrDeclined indicates the confirm callback refused to create a name.
	ErrDeclined = errors.New("trie: creation declined")
	// ErrCycle indicates a sibling chain that loops back on itself.
	ErrCycle = errors.New("trie: sibling chain loops")
)
