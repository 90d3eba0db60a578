// Package labels maps property names to security labels.
//
// Label definition files hold one "<prefix> <label>" pair per line. Lines
// starting with '#' and blank lines are ignored, a line with a prefix but no
// label is skipped, and anything after the label is ignored:
//
//	# comment
//	ro.boot.      u:object_r:bootloader_prop:s0
//	ro.           u:object_r:default_prop:s0
//	*             u:object_r:default_prop:s0
//
// A Resolver keeps the prefixes longest first with "*" last, so the first
// matching entry is also the most specific one. When several files define the
// same prefix, the one loaded first wins.
//
// Where the platform exposes a compiled context catalog, CatalogSource adapts
// it to the same Source interface, and Select picks between the two.
package labels
