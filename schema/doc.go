// Package schema describes the data model that configuration trees are
// built against.
//
// A Module groups the container types of one namespace.  A Container type
// lists its fields in schema order; the names of those fields are the
// container's children names, and for list entries the key fields come first
// and are returned by KeyNames.  Each Container compiles a name to field
// dispatch table when it is built, so tree construction looks fields up
// instead of discovering them at run time.
//
// Modules are kept in a Registry value.  There is no package level registry:
// whatever loads the data model owns the Registry and passes it to parsing,
// which keeps independent registries usable in parallel.
//
// # Schema documents
//
// Modules can be written as YAML:
//
//	module: example-system
//	namespace: urn:example:system
//	prefix: sys
//	roots:
//	  - container: system
//	    children:
//	      - leaf: hostname
//	      - list: interface
//	        keys: [name]
//	        children:
//	          - leaf: name
//	          - leaf: mtu
//	            type: int
//	      - leaf-list: domain
//
// Parse validates that key names exist, are leaves, and form an ordered
// prefix of the children names.  Invalid documents yield errors wrapping
// ErrBadSchema.
package schema
