// Package format names the document formats understood by confsync.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//
//	// infer from a file name, falling back to YAML
//	f = format.FromPath("running.json")
//
// YAML and JSON are accepted both as input (see package load) and output
// (see package encode). PathsFormat is output only: one line per node path.
//
// # Related Packages
//
//   - github.com/signadot/confsync/load - Parse documents into trees
//   - github.com/signadot/confsync/encode - Encode trees to text
package format
