// Package encode renders configuration trees as text.
//
// # Formats
//
// YAML (the default) writes each container as a mapping keyed by child
// name.  Children sharing a name are gathered into a sequence at the
// position of the first of them, so list entries and leaf-lists come out as
// block sequences and the output is always a valid YAML document.  Edit
// operations are written as tags:
//
//	system:
//	  hostname: !replace h2
//	  interface:
//	  - !delete
//	    name: eth1
//
// JSON writes the same structure as a JSON object, with operations as
// "@operation" members on containers and "@<name>" siblings for leaves,
// following RFC 7951 metadata encoding.  Paths lists one line per leaf or
// tagged node.
//
// Encoding is for people and tooling around confsync; it is not a NETCONF
// wire encoding.
//
//	err := encode.Encode(edit, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/confsync/tree - trees being encoded
//   - github.com/signadot/confsync/load - the reverse direction
package encode
