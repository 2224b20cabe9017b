// Package sbol is the in-memory object model: typed property views over per-object value lists,
// the ownership tree, the document registry and the sequence assembly engine.
//
// Every property value is kept in its lexical form, a double-quoted literal or an
// angle-bracketed reference, so the model maps one-to-one onto triples (see Triple).
package sbol

import (
	"fmt"
	"strings"

	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// Config is the explicit configuration threaded through a Document and every object in it.
type Config struct {
	identity.Settings
	// SilentFailures downgrades errors from mutators that return nothing else to logged
	// warnings. Getters always report their errors.
	SilentFailures bool
	// FileFormat is the default format used when writing the document.
	FileFormat string
}

// env is the shared, read-only context of one object tree.
type env struct {
	cfg      Config
	ids      *identity.Service
	registry *Registry
}

func newEnv(cfg Config, registry *Registry) *env {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &env{cfg: cfg, ids: identity.NewService(cfg.Settings), registry: registry}
}

// fail applies the silent-failure policy to err.
func (e *env) fail(op string, err error) error {
	if err == nil || !e.cfg.SilentFailures {
		return err
	}
	log.Warn(log.CatGraph, "suppressed failure", "op", op, "error", err.Error(), "code", sbolerr.Code(err))
	return nil
}

// Entity is implemented by every model type. The typed structs embed *Object.
type Entity interface {
	Base() *Object
}

// Object is the untyped core of every entity: an ordered property store, owned child
// collections and back-links to the parent and the document.
type Object struct {
	typeURI string
	key     string // collection key; differs from typeURI for aliased types
	env     *env
	self    Entity

	props      map[string][]string
	propOrder  []string
	owned      map[string][]Entity
	ownedOrder []string
	ownedTypes map[string]string // owned key -> child type key

	// Back-links are cleared when the object is detached.
	parent *Object
	doc    *Document

	Identity           URIProperty
	PersistentIdentity URIProperty
	DisplayID          TextProperty
	Version            VersionProperty
	WasDerivedFrom     URIProperty
	Name               TextProperty
	Description        TextProperty
}

func newObject(desc TypeDescriptor, e *env) *Object {
	o := &Object{
		typeURI:    desc.TypeURI,
		key:        desc.Key,
		env:        e,
		props:      make(map[string][]string),
		owned:      make(map[string][]Entity),
		ownedTypes: make(map[string]string),
	}
	o.Identity = URIProperty{property: o.declare(PropIdentity, true)}
	o.PersistentIdentity = URIProperty{property: o.declare(PropPersistentIdentity, true)}
	o.DisplayID = TextProperty{property: o.declare(PropDisplayID, true)}
	o.Version = VersionProperty{TextProperty{property: o.declare(PropVersion, true)}}
	o.WasDerivedFrom = URIProperty{property: o.declare(PropWasDerivedFrom, false)}
	o.Name = TextProperty{property: o.declare(PropName, false)}
	o.Description = TextProperty{property: o.declare(PropDescription, false)}
	return o
}

// Base returns o; it lets *Object satisfy Entity through embedding.
func (o *Object) Base() *Object { return o }

// Type returns the wire type URI.
func (o *Object) Type() string { return o.typeURI }

// Key returns the collection key the object is filed under.
func (o *Object) Key() string { return o.key }

// URI returns the identity, or "" when none has been assigned.
func (o *Object) URI() string {
	v := o.props[PropIdentity]
	if len(v) == 0 {
		return ""
	}
	return unwrap(v[0])
}

// Parent returns the owning object, or nil for top-level and detached objects.
func (o *Object) Parent() *Object { return o.parent }

// Document returns the document the object is attached to, or nil.
func (o *Object) Document() *Document { return o.doc }

// Entity returns the typed wrapper of o.
func (o *Object) Entity() Entity {
	if o.self == nil {
		return o
	}
	return o.self
}

// Properties returns the declared property types in declaration order.
func (o *Object) Properties() []string {
	return append([]string(nil), o.propOrder...)
}

// Values returns a copy of the raw lexical values stored for typeURI.
func (o *Object) Values(typeURI string) ([]string, bool) {
	v, ok := o.props[typeURI]
	if !ok {
		return nil, false
	}
	return append([]string(nil), v...), true
}

// SetValues replaces the raw lexical values of typeURI, declaring it if needed. Each value must
// be a quoted literal or a bracketed reference.
func (o *Object) SetValues(typeURI string, values []string) error {
	for _, v := range values {
		if !isLiteral(v) && !isReference(v) {
			return o.env.fail("SetValues", fmt.Errorf("%w: value %q of %s is neither a literal nor a reference",
				sbolerr.ErrInvalidArgument, v, typeURI))
		}
	}
	if o.guarded(typeURI) && o.env.ids.Compliant() {
		return o.env.fail("SetValues", fmt.Errorf("%w: %s is derived in compliant mode", sbolerr.ErrCompliance, typeURI))
	}
	o.declare(typeURI, false)
	o.props[typeURI] = append([]string(nil), values...)
	o.touch()
	return nil
}

// OwnedKeys returns the declared child-collection keys in declaration order.
func (o *Object) OwnedKeys() []string {
	return append([]string(nil), o.ownedOrder...)
}

// Children returns the children held under key.
func (o *Object) Children(key string) []Entity {
	return append([]Entity(nil), o.owned[key]...)
}

// declare registers a property type with an empty value list. Re-declaring is a no-op.
func (o *Object) declare(typeURI string, guard bool) property {
	if _, ok := o.props[typeURI]; !ok {
		o.props[typeURI] = nil
		o.propOrder = append(o.propOrder, typeURI)
	}
	return property{owner: o, typeURI: typeURI, guard: guard}
}

func (o *Object) declareOwned(key, childKey string) {
	if _, ok := o.owned[key]; !ok {
		o.owned[key] = nil
		o.ownedOrder = append(o.ownedOrder, key)
	}
	o.ownedTypes[key] = childKey
}

func (o *Object) guarded(typeURI string) bool {
	switch typeURI {
	case PropIdentity, PropPersistentIdentity, PropDisplayID, PropVersion:
		return true
	}
	return false
}

// setRaw bypasses the compliance guard; used while minting and loading.
func (o *Object) setRaw(typeURI string, values ...string) {
	o.declare(typeURI, o.guarded(typeURI))
	o.props[typeURI] = values
}

// setIdentity changes the identity and re-files the object wherever it is indexed.
func (o *Object) setIdentity(uri string) {
	old := o.URI()
	o.setRaw(PropIdentity, reference(uri))
	if o.doc != nil && old != uri {
		o.doc.rekey(o, old, uri)
	}
}

// touch drops cached resolutions that may depend on o's references.
func (o *Object) touch() {
	if o.doc != nil {
		o.doc.invalidate(o.URI())
	}
}

// walk visits o and every descendant, parents before children. visited guards against a
// malformed tree that shares a child.
func (o *Object) walk(fn func(*Object)) {
	visited := make(map[*Object]bool)
	stack := []*Object{o}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		fn(n)
		for i := len(n.ownedOrder) - 1; i >= 0; i-- {
			children := n.owned[n.ownedOrder[i]]
			for j := len(children) - 1; j >= 0; j-- {
				stack = append(stack, children[j].Base())
			}
		}
	}
}

// String is the identity, or the type for an unidentified object.
func (o *Object) String() string {
	if uri := o.URI(); uri != "" {
		return uri
	}
	return "<unidentified " + o.typeURI + ">"
}

// Lexical conventions for stored values.

func literal(s string) string   { return `"` + s + `"` }
func reference(s string) string { return "<" + s + ">" }

func isLiteral(v string) bool {
	return len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)
}

func isReference(v string) bool {
	return len(v) >= 2 && strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">")
}

// unwrap strips the quoting or bracketing of a stored value.
func unwrap(v string) string {
	if len(v) < 2 {
		return v
	}
	return v[1 : len(v)-1]
}
