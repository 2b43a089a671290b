// Package tree provides the in-memory configuration tree that confsync
// reconciles.
//
// # Arena
//
// A Tree is an arena of node records addressed by stable IDs.  Parent and
// child relationships are stored as IDs, never as pointers, so a tree has no
// reference cycles.  A Node is a small value handle, a (*Tree, ID) pair,
// and is cheap to copy and compare.
//
// Nodes are created attached: every node in a tree is reachable from its
// root until it is explicitly detached.  Detached records stay in the arena
// until Compact rebuilds it.  Compact invalidates existing handles into that
// tree.
//
// # Node kinds
//
//   - LeafKind: a scalar Value, optionally a list key.
//   - ContainerKind: children in insertion order, typed by a
//     schema.Container.  A container whose type has key names is a
//     list entry.
//   - ElementKind: an untyped node produced when the schema does not know
//     a name, typically because the device runs a newer revision.  Elements
//     may carry a value and children and are compared structurally.
//
// # Identity and comparison
//
// Two nodes are name identical when namespace and name match.  A list entry
// is additionally identified by the values of its key leaves, compared in
// key name order.  Compare reports Equal, KeyMismatch or ContentDiff for a
// pair of nodes, looking one level deep: same named child groups are
// compared by name and value, container contents are left to the caller to
// recurse into.
//
// # Edit operations
//
// Output trees carry an Op per node: OpCreate, OpDelete, OpReplace, or
// OpNone, which encoders treat as an implicit merge.  Input trees never
// carry ops.
//
// # Thread Safety
//
// Trees are not safe for concurrent mutation.  Read only use from several
// goroutines is fine.  Functions in this module that produce trees clone
// their inputs, so output trees never alias input trees.
package tree
