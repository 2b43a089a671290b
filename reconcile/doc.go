// Package reconcile compares a current configuration tree with a desired
// one and plans the edits that take the first to the second.
//
// Inspect classifies the differences between two trees into nodes unique to
// either side and nodes that changed.  CheckSync reports whether two trees
// are equivalent.  Sync plans a replace style edit: nodes only in the
// current tree are tagged delete, nodes only in the desired tree create,
// and changed nodes replace, each placed under untagged skeleton ancestors.
// SyncMerge plans a merge style edit: a copy of the desired tree with
// unchanged content pruned and content present only in the current tree
// added back tagged delete.
//
// Below the inspected roots, nodes whose content differs are reported whole
// as changed, plain containers included, and Sync replaces them whole.
// Only the inspected roots themselves, and the roots wrapped in a synthetic
// root, are looked into when their content differs.
//
// All functions leave their inputs untouched and return trees that share
// nothing with them.  Node sets are handled by wrapping them under a
// synthetic root, see tree.Wrap.
package reconcile
