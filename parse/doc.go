// Package parse parses lax JSON text into IR nodes.
//
// # Usage
//
//	// Parse lax JSON text
//	node, err := parse.Parse([]byte(`{name: 'alice', age: 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse from string
//	node, err := parse.ParseString(`[1, 2, 3]`)
//
// The accepted grammar is a superset of JSON: object keys may be bare
// identifiers, strings may use single or double quotes, and numbers may be
// hexadecimal (0x1f). Parsing does not stop at the first grammar violation;
// all violations are collected and returned together as a *SyntaxError.
//
// # Related Packages
//
//   - github.com/signadot/laxjson/ir - IR representation
//   - github.com/signadot/laxjson/encode - Encode IR to text
//   - github.com/signadot/laxjson/token - Tokenization
package parse
