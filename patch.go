package laxjson

import (
	"bytes"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"
)

// ApplyPatch applies an RFC 6902 patch to doc and returns the patched
// tree. The patch tree must be an array of operation objects. Both trees
// must have a strict JSON rendering; undefined values and NUL characters
// are rejected.
func ApplyPatch(doc, patch *ir.Node) (*ir.Node, error) {
	docJSON, err := strictJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("doc: %w", err)
	}
	patchJSON, err := strictJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(docJSON)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc and returns the
// merged tree. Null members in patch remove the corresponding members
// from doc, per the RFC. The same strict JSON restrictions as ApplyPatch
// apply.
func ApplyMergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	docJSON, err := strictJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("doc: %w", err)
	}
	patchJSON, err := strictJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	out, err := jsonpatch.MergePatch(docJSON, patchJSON)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}

// strictJSON renders a tree as compact strict JSON. Undefined values and
// NUL characters have no strict rendering, so trees holding them are
// rejected before encoding.
func strictJSON(y *ir.Node) ([]byte, error) {
	if y == nil {
		return nil, fmt.Errorf("nil node")
	}
	err := y.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		switch n.Type {
		case ir.UndefinedType:
			return false, fmt.Errorf("undefined value has no strict JSON rendering")
		case ir.StringType:
			if strings.ContainsRune(n.String, 0) {
				return false, fmt.Errorf("string containing NUL has no strict JSON rendering")
			}
		case ir.ObjectType:
			for _, k := range n.Keys {
				if strings.ContainsRune(k, 0) {
					return false, fmt.Errorf("member name containing NUL has no strict JSON rendering")
				}
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(y, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
