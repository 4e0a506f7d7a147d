package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is a single value in a document tree. The Type field selects the
// variant; the remaining fields carry the variant's payload and are
// meaningless for other variants.
type Node struct {
	Type Type

	Bool    bool
	Int64   *int64
	Float64 *float64
	String  string

	// Keys holds object member names, parallel to Values. For arrays,
	// Keys is nil and Values holds the elements in order.
	Keys   []string
	Values []*Node
}

var (
	undefined = &Node{Type: UndefinedType}
	null      = &Node{Type: NullType}
)

// Undefined returns the shared undefined node. It is the result of looking
// up members or indices that are not present.
func Undefined() *Node {
	return undefined
}

// Null returns the shared null node.
func Null() *Node {
	return null
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	if v {
		return &Node{Type: BoolType, Bool: true}
	}
	return &Node{Type: BoolType}
}

// EmptyArray returns a new, empty array node.
func EmptyArray() *Node {
	return &Node{
		Type:   ArrayType,
		Values: []*Node{},
	}
}

// EmptyObject returns a new, empty object node.
func EmptyObject() *Node {
	return &Node{
		Type:   ObjectType,
		Keys:   []string{},
		Values: []*Node{},
	}
}

// FromSlice returns an array node holding the given elements. The slice is
// not copied.
func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: vs,
	}
}

// FromMap returns an object node holding the given members in sorted key
// order. Use SetMember on an empty object to control member order.
func FromMap(m map[string]*Node) *Node {
	res := EmptyObject()
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, m[key])
	}
	return res
}

// KeyVal is a single object member for FromKeyVals.
type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns an object node holding the given members in the
// given order. A repeated key keeps the last value at the first key's
// position, matching SetMember.
func FromKeyVals(kvs ...KeyVal) *Node {
	res := EmptyObject()
	for _, kv := range kvs {
		if i := slices.Index(res.Keys, kv.Key); i >= 0 {
			res.Values[i] = kv.Val
			continue
		}
		res.Keys = append(res.Keys, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

// ToMap returns the members of an object node as a map, or nil if the node
// is not an object. Member order is lost.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Keys))
	for i, key := range node.Keys {
		res[key] = node.Values[i]
	}
	return res
}

// Get returns the member named field, or the shared Undefined node if node
// is not an object or has no such member.
func Get(node *Node, field string) *Node {
	if node == nil || node.Type != ObjectType {
		return undefined
	}
	for i, key := range node.Keys {
		if key == field {
			return node.Values[i]
		}
	}
	return undefined
}

// GetIndex returns the element at index i of an array node, or the shared
// Undefined node if i is out of range. On an object node it falls back to
// looking up the decimal rendering of i as a member name, so indices of a
// promoted array remain reachable.
func GetIndex(node *Node, i int) *Node {
	if node == nil {
		return undefined
	}
	switch node.Type {
	case ArrayType:
		if i < 0 || i >= len(node.Values) {
			return undefined
		}
		return node.Values[i]
	case ObjectType:
		return Get(node, strconv.Itoa(i))
	default:
		return undefined
	}
}

// Has reports whether node is an object with a member named field.
func Has(node *Node, field string) bool {
	if node == nil || node.Type != ObjectType {
		return false
	}
	return slices.Contains(node.Keys, field)
}

// Len returns the number of elements of an array or members of an object,
// and 0 for every other variant.
func (node *Node) Len() int {
	switch node.Type {
	case ArrayType, ObjectType:
		return len(node.Values)
	default:
		return 0
	}
}

func (node *Node) IsUndefined() bool { return node.Type == UndefinedType }
func (node *Node) IsNull() bool      { return node.Type == NullType }
func (node *Node) IsArray() bool     { return node.Type == ArrayType }
func (node *Node) IsObject() bool    { return node.Type == ObjectType }

// Clone returns a deep copy of node. The shared Undefined and Null nodes
// are returned as-is.
func (node *Node) Clone() *Node {
	switch node.Type {
	case UndefinedType:
		return undefined
	case NullType:
		return null
	}
	res := &Node{
		Type:   node.Type,
		Bool:   node.Bool,
		String: node.String,
	}
	if node.Int64 != nil {
		i := *node.Int64
		res.Int64 = &i
	}
	if node.Float64 != nil {
		f := *node.Float64
		res.Float64 = &f
	}
	if node.Keys != nil {
		res.Keys = slices.Clone(node.Keys)
	}
	if node.Values != nil {
		res.Values = make([]*Node, len(node.Values))
		for i, v := range node.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Visit walks the tree rooted at node in depth-first order, calling f before
// (isPost false) and after (isPost true) each node's children. Returning
// false from the pre call skips the children.
func (node *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(node, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range node.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(node, true); err != nil {
		return err
	}
	return nil
}
