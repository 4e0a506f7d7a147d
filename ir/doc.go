// Package ir provides the intermediate representation (IR) for lax JSON
// documents.
//
// # Overview
//
// The IR package defines the core data structure for representing documents
// as a tree of nodes. All documents (whether parsed from text or created
// programmatically) are represented as ir.Node trees. The IR contains no
// position information from input documents, making it purely semantic.
//
// The IR works as a recursive tagged union structure, where values are placed
// in fields depending on the node type.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - UndefinedType: absent value, the zero value of Node
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (keys and values)
//
// Undefined is distinct from Null. Member and index lookups on a node return
// the shared Undefined node rather than an error when nothing is present, so
// chained navigation never panics:
//
//	port := ir.Get(ir.Get(doc, "server"), "port").AsInt64()
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Objects
//
// For ObjectType nodes, Keys[i] names the value at Values[i], so there are
// always as many keys as values. Member order is insertion order and is
// preserved by every operation, including serialization.
//
// # Arrays and Promotion
//
// ArrayType nodes keep their elements in Values. Setting a named member on
// an array promotes it in place to an object whose keys are the decimal
// element indices ("0", "1", ...). Promotion is one-way: there is no
// operation that turns an object back into an array.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//
// Exactly one of the two is set on a well-formed number node.
//
// # Coercion
//
// The As* accessors (AsBool, AsInt64, AsFloat64, AsString) are total: they
// return a zero-equivalent instead of failing when the node's type does not
// match, following fixed cross-type rules. See their documentation.
//
// # Mutation
//
// Mutators (SetMember, RemoveMember, Push, Pop, InsertAt, RemoveAt) return
// an *OpError when invoked on a node variant that does not support them.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to mutate nodes from
// multiple goroutines, you must synchronize access yourself.
//
// # Related Packages
//
//   - github.com/signadot/laxjson/parse - Parses text into IR nodes
//   - github.com/signadot/laxjson/encode - Encodes IR nodes to text
//   - github.com/signadot/laxjson/gomap - Maps IR nodes to and from Go values
package ir
