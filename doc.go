// Package confsync applies and scopes configuration edit trees.
//
// The reconcile package computes edit trees taking a current configuration
// tree to a desired one.  Patch applies such an edit tree to a document,
// and Select and Filter pick the parts of a tree an edit should cover.
package confsync
