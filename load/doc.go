// Package load builds configuration trees from YAML or JSON documents.
//
// A document is a mapping whose keys name root containers, either plainly
// or qualified with a module prefix ("sys:system").  Below a root, mappings
// are containers, sequences of mappings are list entries, sequences of
// scalars are leaf-lists and scalars are leaves:
//
//	system:
//	  hostname: h1
//	  interface:
//	  - name: eth0
//	    mtu: 1500
//	  domain: [example.com, example.org]
//
// Leaf values are coerced to the value type the schema declares for them.
// A leaf of type empty is written as null or [null].
//
// Names the schema does not know are rejected with ErrUnknownElement unless
// AllowUnknown is set, in which case they become untyped element nodes and
// take part in comparison structurally.
package load
