// Package gomap converts between IR value trees and native Go values.
//
// # Usage
//
//	// Apply an IR tree to a Go struct
//	type User struct {
//	    Name string
//	    Age  int
//	}
//	var user User
//	err := gomap.FromIR(node, &user)
//
//	// Build an IR tree from a Go value
//	node, err := gomap.ToIR(user)
//
//	// With a private converter registry
//	reg := gomap.NewRegistry()
//	reg.Register(reflect.TypeOf(time.Time{}), gomap.TimeMillisConverter{})
//	node, err = gomap.NewMapper(reg).ToIR(user)
//
// Conversion is structural by default: exported fields and Get/Is/Set
// accessor methods of a type each contribute one object member, renamed
// by a `lax:"name=..."` tag when present and skipped entirely under
// `lax:"-"`. A Converter registered for a type replaces the structural
// path in both directions.
//
// Field and accessor matching is case-sensitive (like encoding/json/v2).
// Unexported fields are ignored. Unknown members in the source tree are
// ignored rather than reported, and primitive targets are filled through
// the ir package's total coercions, so applying a tree to a struct only
// fails on genuinely unusable shapes (arrays into scalars, unsupported
// target kinds, converter failures).
//
// # Related Packages
//
//   - github.com/signadot/laxjson/ir - value tree representation
//   - github.com/signadot/laxjson/parse - text to value trees
//   - github.com/signadot/laxjson/encode - value trees to text
package gomap
