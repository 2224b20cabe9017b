package sbol

import (
	"fmt"
	"sync"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// TypeDescriptor tells the model how to build and file one type.
type TypeDescriptor struct {
	// TypeURI is the wire type emitted as rdf:type.
	TypeURI string
	// Key is the collection the type is filed under. A Key different from TypeURI declares an
	// alias: the type shares TypeURI's wire representation but lives in its own collection.
	Key string
	// TopLevel types are indexed by the document.
	TopLevel bool
	// New attaches the typed views to a fresh base object.
	New func(o *Object) Entity
}

// Aliased reports whether the descriptor files its objects apart from its wire type.
func (d TypeDescriptor) Aliased() bool { return d.Key != d.TypeURI }

// Registry maps type keys to descriptors. It is the extension point for new types.
type Registry struct {
	mu      sync.RWMutex
	byKey   map[string]TypeDescriptor
	aliases map[string][]string // wire type -> aliased keys
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:   make(map[string]TypeDescriptor),
		aliases: make(map[string][]string),
	}
}

// DefaultRegistry returns a new registry holding the built-in types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range builtinTypes() {
		if err := r.Register(d); err != nil {
			panic(err) // built-in table is static
		}
	}
	return r
}

// Register adds a descriptor. Key defaults to TypeURI. An aliased descriptor requires its wire
// type to be registered first.
func (r *Registry) Register(d TypeDescriptor) error {
	if d.TypeURI == "" || d.New == nil {
		return fmt.Errorf("%w: descriptor needs a type URI and a constructor", sbolerr.ErrInvalidArgument)
	}
	if d.Key == "" {
		d.Key = d.TypeURI
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[d.Key]; ok {
		return fmt.Errorf("%w: type key %s already registered", sbolerr.ErrInvalidArgument, d.Key)
	}
	if d.Aliased() {
		general, ok := r.byKey[d.TypeURI]
		if !ok {
			return fmt.Errorf("%w: alias %s needs %s registered first", sbolerr.ErrInvalidArgument, d.Key, d.TypeURI)
		}
		if general.TopLevel != d.TopLevel {
			return fmt.Errorf("%w: alias %s must match the top-level marker of %s", sbolerr.ErrInvalidArgument, d.Key, d.TypeURI)
		}
		r.aliases[d.TypeURI] = append(r.aliases[d.TypeURI], d.Key)
	}
	r.byKey[d.Key] = d
	r.order = append(r.order, d.Key)
	return nil
}

// Lookup returns the descriptor filed under key.
func (r *Registry) Lookup(key string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[key]
	return d, ok
}

// Keys returns every registered key in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// ForWire picks the descriptor for an object read with wire type typeURI. kind is the object's
// sysbio#type reference, if any; it selects an alias registered for typeURI. Anything else
// resolves to the general type.
func (r *Registry) ForWire(typeURI, kind string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kind != "" {
		for _, key := range r.aliases[typeURI] {
			if key == kind {
				return r.byKey[key], true
			}
		}
	}
	d, ok := r.byKey[typeURI]
	return d, ok
}

func build(d TypeDescriptor, e *env) Entity {
	o := newObject(d, e)
	ent := d.New(o)
	o.self = ent
	return ent
}

// Generic holds objects of a type no descriptor knows; it keeps every triple for round trips.
type Generic struct {
	*Object
}

func genericDescriptor(typeURI string, topLevel bool) TypeDescriptor {
	return TypeDescriptor{
		TypeURI:  typeURI,
		Key:      typeURI,
		TopLevel: topLevel,
		New:      func(o *Object) Entity { return &Generic{Object: o} },
	}
}

func builtinTypes() []TypeDescriptor {
	return []TypeDescriptor{
		{TypeURI: TypeComponentDefinition, TopLevel: true, New: newComponentDefinition},
		{TypeURI: TypeComponent, New: newComponent},
		{TypeURI: TypeSequenceConstraint, New: newSequenceConstraint},
		{TypeURI: TypeSequence, TopLevel: true, New: newSequence},
		{TypeURI: TypeModel, TopLevel: true, New: newModel},
		{TypeURI: TypeModuleDefinition, TopLevel: true, New: newModuleDefinition},
		{TypeURI: TypeImplementation, TopLevel: true, New: newImplementation},
		{TypeURI: TypeCollection, TopLevel: true, New: newCollection},
		{TypeURI: TypeActivity, TopLevel: true, New: newActivity},
		{TypeURI: TypeUsage, New: newUsage},
		{TypeURI: TypeDesign, TopLevel: true, New: newDesign},
		{TypeURI: TypeAnalysis, TopLevel: true, New: newAnalysis},
		{TypeURI: TypeImplementation, Key: KeyBuild, TopLevel: true, New: newBuild},
		{TypeURI: TypeCollection, Key: KeyTest, TopLevel: true, New: newTest},
	}
}
