package ir

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyKey is returned by SetMember for an empty or all-whitespace
// member name.
var ErrEmptyKey = errors.New("empty member name")

// MaterializeObject converts an array node in place into an object whose
// keys are the decimal element indices. The conversion is one-way; after it,
// array operations on the node return an *OpError. Object nodes pass
// through unchanged, every other variant returns an *OpError.
func (node *Node) MaterializeObject() error {
	switch node.Type {
	case ObjectType:
		return nil
	case ArrayType:
	default:
		return opErr("MaterializeObject", node.Type)
	}
	keys := make([]string, len(node.Values))
	for i := range node.Values {
		keys[i] = strconv.Itoa(i)
	}
	node.Type = ObjectType
	node.Keys = keys
	return nil
}

// SetMember inserts or replaces the member named key. Replacing keeps the
// member's position; inserting appends. On an array node the node is first
// materialized as an object (see MaterializeObject). Other variants return
// an *OpError.
func (node *Node) SetMember(key string, val *Node) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	switch node.Type {
	case ObjectType:
	case ArrayType:
		if err := node.MaterializeObject(); err != nil {
			return err
		}
	default:
		return opErr("SetMember", node.Type)
	}
	if val == nil {
		val = null
	}
	for i, k := range node.Keys {
		if k == key {
			node.Values[i] = val
			return nil
		}
	}
	node.Keys = append(node.Keys, key)
	node.Values = append(node.Values, val)
	return nil
}

// RemoveMember removes the member named key and reports whether it was
// present. An array node is materialized as an object first, whether or not
// the member exists. Other variants return an *OpError.
func (node *Node) RemoveMember(key string) (bool, error) {
	switch node.Type {
	case ObjectType:
	case ArrayType:
		if err := node.MaterializeObject(); err != nil {
			return false, err
		}
	default:
		return false, opErr("RemoveMember", node.Type)
	}
	for i, k := range node.Keys {
		if k == key {
			node.Keys = slices.Delete(node.Keys, i, i+1)
			node.Values = slices.Delete(node.Values, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// Push appends val to an array node. Other variants return an *OpError.
func (node *Node) Push(val *Node) error {
	if node.Type != ArrayType {
		return opErr("Push", node.Type)
	}
	if val == nil {
		val = null
	}
	node.Values = append(node.Values, val)
	return nil
}

// Pop removes and returns the last element of an array node. On an empty
// array it returns the shared Undefined node. Other variants return an
// *OpError.
func (node *Node) Pop() (*Node, error) {
	if node.Type != ArrayType {
		return nil, opErr("Pop", node.Type)
	}
	n := len(node.Values)
	if n == 0 {
		return undefined, nil
	}
	out := node.Values[n-1]
	node.Values = node.Values[:n-1]
	return out, nil
}

// InsertAt inserts val at index i of an array node, shifting later elements
// up. Indices out of range are clamped to the array bounds. Other variants
// return an *OpError.
func (node *Node) InsertAt(i int, val *Node) error {
	if node.Type != ArrayType {
		return opErr("InsertAt", node.Type)
	}
	if val == nil {
		val = null
	}
	if i < 0 {
		i = 0
	}
	if i > len(node.Values) {
		i = len(node.Values)
	}
	node.Values = slices.Insert(node.Values, i, val)
	return nil
}

// RemoveAt removes and returns the element at index i of an array node,
// shifting later elements down. Indices out of range return the shared
// Undefined node and leave the array unchanged. Other variants return an
// *OpError.
func (node *Node) RemoveAt(i int) (*Node, error) {
	if node.Type != ArrayType {
		return nil, opErr("RemoveAt", node.Type)
	}
	if i < 0 || i >= len(node.Values) {
		return undefined, nil
	}
	out := node.Values[i]
	node.Values = slices.Delete(node.Values, i, i+1)
	return out, nil
}
