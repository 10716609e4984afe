// Package kvstore provides the ordered, nested key/value tree that both
// migration directions build and consume.
//
// A store is a *Map three levels deep:
//
//	destination file → section → key → Entry
//
// The tree itself does not enforce the depth. Rules produce one-entry
// fragments (see Fragment) which are folded into an accumulator with Merge.
//
// # Ordering
//
// Keys keep their insertion order at every level. Serialized output is
// therefore deterministic and follows the order in which facts were
// discovered, which keeps generated files diff-friendly.
//
// # Merge semantics
//
// Merge is non-destructive: the first writer of a path wins. When both sides
// hold a *Map at the same key the maps are merged recursively; every other
// clash (leaf vs leaf, leaf vs map) leaves the destination untouched. Merge
// never fails.
package kvstore
