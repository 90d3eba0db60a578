// Package trie resolves dotted property names inside a property area.
//
// # Overview
//
// A name such as "ro.boot.hardware" is split into segments ("ro", "boot",
// "hardware"). Each segment level is a binary search tree of sibling nodes
// linked through their left/right offsets; a node's children offset points at
// the tree for the next level, and its prop offset at the value record for the
// name ending there.
//
// Siblings are ordered by segment length first and only then bytewise, so
// "zz" sorts after "a". The platform's property service builds regions with
// this ordering; a lookup using plain lexicographic order would miss nodes.
//
// # Lookups and Creation
//
//	t := trie.New(a, logger)
//	info, err := t.Find("ro.build.type")          // read-only
//	info, err = t.FindOrCreate("persist.x", nil)  // allocate what is missing
//
// Creation allocates the missing nodes one segment at a time and finally the
// value record. Allocation is irreversible: if the region fills up half way,
// the nodes already created stay.
//
// # Walking
//
// Walk visits every populated value record depth-first: a node's own record,
// then its left subtree, right subtree and children, using an explicit stack.
package trie
