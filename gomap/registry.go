package gomap

import (
	"reflect"
	"sync"

	"github.com/signadot/laxjson/ir"
)

// Converter overrides structural mapping for one native type, in both
// directions. ToIR receives the native value; FromIR receives the source
// node plus the requested target type and returns a value assignable to
// it.
type Converter interface {
	ToIR(v any) (*ir.Node, error)
	FromIR(y *ir.Node, target reflect.Type) (any, error)
}

// ConverterProvider is implemented by types that carry their own
// converter. The first conversion touching such a type registers the
// provided converter in the active registry, so later lookups hit the
// registry map directly.
type ConverterProvider interface {
	LaxConverter() Converter
}

var converterProviderType = reflect.TypeOf((*ConverterProvider)(nil)).Elem()

// Registry maps native types to Converters. At most one converter is
// held per type; registering again replaces the previous one. Multiple
// registries may coexist and are independent.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]Converter
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{converters: map[reflect.Type]Converter{}}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the
// package-level ToIR and FromIR and by Mappers constructed with a nil
// registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register binds a converter to a native type, replacing any previous
// binding for that type.
func (r *Registry) Register(t reflect.Type, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[t] = c
}

// Converter returns the converter bound to t, or nil when the type has
// none. Types implementing ConverterProvider are bound lazily: the first
// lookup instantiates their converter once and caches it, re-checking
// under the write lock so racing lookups never build it twice.
func (r *Registry) Converter(t reflect.Type) Converter {
	r.mu.RLock()
	c, ok := r.converters[t]
	r.mu.RUnlock()
	if ok {
		return c
	}
	if !providesConverter(t) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.converters[t]; ok {
		return c
	}
	c = providedConverter(t)
	r.converters[t] = c
	return c
}

// providesConverter reports whether t or *t implements ConverterProvider.
func providesConverter(t reflect.Type) bool {
	if t.Implements(converterProviderType) {
		return true
	}
	if t.Kind() != reflect.Ptr {
		return reflect.PointerTo(t).Implements(converterProviderType)
	}
	return false
}

// providedConverter instantiates the converter a type declares for
// itself. Declared converters are looked up on a zero value, so the
// provider method must not depend on receiver state.
func providedConverter(t reflect.Type) Converter {
	v := reflect.New(t).Elem()
	if p, ok := v.Interface().(ConverterProvider); ok {
		return p.LaxConverter()
	}
	return v.Addr().Interface().(ConverterProvider).LaxConverter()
}
