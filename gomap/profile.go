package gomap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// TypeProfile describes how one struct type maps to an object: which
// exported fields and accessor methods contribute members, and under
// which names. Profiles are built once per type and never evicted.
type TypeProfile struct {
	Type    reflect.Type
	Fields  []FieldProfile
	Getters []MethodProfile
	Setters []MethodProfile

	fieldByAlias map[string]int
	fieldByName  map[string]int
	setterByName map[string]int
}

// FieldProfile describes one visible exported struct field.
type FieldProfile struct {
	Name  string // the field name as declared
	Alias string // rename from the lax tag, "" when absent
	Index []int  // reflect index chain, embedded structs included
	Type  reflect.Type
}

// MemberName returns the object member name the field maps to.
func (f *FieldProfile) MemberName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// MethodProfile describes one eligible accessor method. Method indexes
// into the pointer type's method set, which covers both receiver forms.
type MethodProfile struct {
	Name   string // member name, accessor prefix stripped
	Method int
	Type   reflect.Type // result type for getters, parameter type for setters
}

// profileCache memoizes TypeProfiles. Cached lookups take only the read
// lock; first-time construction re-checks under the write lock so racing
// goroutines never introspect the same type twice.
type profileCache struct {
	mu sync.RWMutex
	m  map[reflect.Type]*TypeProfile
}

func newProfileCache() *profileCache {
	return &profileCache{m: map[reflect.Type]*TypeProfile{}}
}

var profiles = newProfileCache()

// ProfileOf returns the profile for a struct type, building and caching
// it on first use. Non-struct types and malformed lax tags are errors.
func ProfileOf(t reflect.Type) (*TypeProfile, error) {
	return profiles.profileOf(t)
}

func (pc *profileCache) profileOf(t reflect.Type) (*TypeProfile, error) {
	pc.mu.RLock()
	p := pc.m[t]
	pc.mu.RUnlock()
	if p != nil {
		return p, nil
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if p := pc.m[t]; p != nil {
		return p, nil
	}
	p, err := buildProfile(t)
	if err != nil {
		return nil, err
	}
	pc.m[t] = p
	return p, nil
}

func buildProfile(t reflect.Type) (*TypeProfile, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("profile requires a struct type, got %s", t)
	}
	p := &TypeProfile{
		Type:         t,
		fieldByAlias: map[string]int{},
		fieldByName:  map[string]int{},
		setterByName: map[string]int{},
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("lax")
		if tag == "-" {
			continue
		}
		parsed, err := ParseStructTag(tag)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		if _, ok := parsed["ignore"]; ok {
			continue
		}
		fp := FieldProfile{
			Name:  f.Name,
			Alias: parsed["name"],
			Index: f.Index,
			Type:  f.Type,
		}
		p.Fields = append(p.Fields, fp)
		if fp.Alias != "" {
			p.fieldByAlias[fp.Alias] = len(p.Fields) - 1
		}
		p.fieldByName[fp.Name] = len(p.Fields) - 1
	}
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if name, ok := accessorName(m.Name, "Get"); ok && isGetterFunc(m.Type) {
			p.Getters = append(p.Getters, MethodProfile{Name: name, Method: i, Type: m.Type.Out(0)})
			continue
		}
		if name, ok := accessorName(m.Name, "Is"); ok && isGetterFunc(m.Type) {
			p.Getters = append(p.Getters, MethodProfile{Name: name, Method: i, Type: m.Type.Out(0)})
			continue
		}
		if name, ok := accessorName(m.Name, "Set"); ok && isSetterFunc(m.Type, t, pt) {
			p.Setters = append(p.Setters, MethodProfile{Name: name, Method: i, Type: m.Type.In(1)})
			p.setterByName[name] = len(p.Setters) - 1
		}
	}
	return p, nil
}

// accessorName strips an accessor prefix and returns the member name.
// The rune after the prefix must be upper case, so methods like Isolate
// or Settle are not accessors. The name keeps its case: Go exported
// fields are upper-cased already, making GetFoo and a field Foo collide
// naturally the way the structural model wants.
func accessorName(method, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(method, prefix)
	if !ok || rest == "" {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return rest, true
}

// isGetterFunc reports whether a method func type (receiver included as
// the first input) takes no arguments and returns exactly one value.
func isGetterFunc(ft reflect.Type) bool {
	return ft.NumIn() == 1 && ft.NumOut() == 1
}

// isSetterFunc reports whether a method func type takes one argument and
// returns nothing or the declaring type, in either receiver form, which
// admits chained setters.
func isSetterFunc(ft, t, pt reflect.Type) bool {
	if ft.NumIn() != 2 {
		return false
	}
	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == t || ft.Out(0) == pt
	}
	return false
}

// getter resolves an eligible getter by member name.
func (p *TypeProfile) getter(name string) (MethodProfile, bool) {
	for _, g := range p.Getters {
		if g.Name == name {
			return g, true
		}
	}
	return MethodProfile{}, false
}

// resolveMember finds the destination for one source member: a tag alias
// outranks a field name, which outranks a setter.
func (p *TypeProfile) resolveMember(name string) (field *FieldProfile, setter *MethodProfile) {
	if i, ok := p.fieldByAlias[name]; ok {
		return &p.Fields[i], nil
	}
	if i, ok := p.fieldByName[name]; ok {
		return &p.Fields[i], nil
	}
	if i, ok := p.setterByName[name]; ok {
		return nil, &p.Setters[i]
	}
	return nil, nil
}
