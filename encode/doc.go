// Package encode serializes IR nodes to lax JSON text.
//
// # Usage
//
//	// Compact output
//	err := encode.Encode(node, w)
//
//	// Indented output without null members
//	err := encode.Encode(node, w,
//	    encode.EncodeIndent("  "),
//	    encode.EncodeOmitNull(true))
//
// Output is strict JSON except for two deliberate deviations: a NUL
// character inside a string is written as the two-character escape \0, and
// an undefined node is written as the bare word undefined.
//
// # Related Packages
//
//   - github.com/signadot/laxjson/ir - IR representation
//   - github.com/signadot/laxjson/parse - Parse text into IR
package encode
