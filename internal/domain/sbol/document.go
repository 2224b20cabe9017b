package sbol

import (
	"context"
	"fmt"

	"github.com/nroehner/libSBOL/internal/cachemanager"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/pubsub"
)

// deferring is implemented by types that hold unresolved references to other top-levels. The
// document resolves them on the first Get and binds the results.
type deferring interface {
	Entity
	deferredRefs() []ReferencedObject
	bindResolved(resolved []Entity)
}

// Document owns the top-level objects and indexes every attached object by identity.
type Document struct {
	env *env

	index       map[string]Entity   // top-level identity -> entity
	nodes       map[string]*Object  // every attached identity, for uniqueness
	collections map[string][]Entity // collection key -> top-levels, insertion order
	keyOrder    []string

	resolutions *cachemanager.Cache[[]Entity]
	resolver    *cachemanager.Resolver[[]Entity, deferring]
	broker      *pubsub.Broker[string]

	ComponentDefinitions *TopLevels[*ComponentDefinition]
	Sequences            *TopLevels[*Sequence]
	Models               *TopLevels[*Model]
	ModuleDefinitions    *TopLevels[*ModuleDefinition]
	Implementations      *TopLevels[*Implementation]
	Collections          *TopLevels[*Collection]
	Activities           *TopLevels[*Activity]
	Designs              *TopLevels[*Design]
	Builds               *TopLevels[*Build]
	Tests                *TopLevels[*Test]
	Analyses             *TopLevels[*Analysis]
}

type options struct {
	registry *Registry
}

// Option customizes a Document.
type Option func(*options)

// WithRegistry uses r instead of the default registry, e.g. to add extension types.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// NewDocument returns an empty document bound to cfg. Call Close to release its event broker.
func NewDocument(cfg Config, opts ...Option) *Document {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := &Document{
		env:         newEnv(cfg, o.registry),
		index:       make(map[string]Entity),
		nodes:       make(map[string]*Object),
		collections: make(map[string][]Entity),
		resolutions: cachemanager.New[[]Entity]("references", cachemanager.NoExpiration),
		broker:      pubsub.NewBroker[string](),
	}
	d.resolver = cachemanager.NewResolver[[]Entity, deferring](d.resolutions, d.resolve)

	d.ComponentDefinitions = topLevels[*ComponentDefinition](d, TypeComponentDefinition)
	d.Sequences = topLevels[*Sequence](d, TypeSequence)
	d.Models = topLevels[*Model](d, TypeModel)
	d.ModuleDefinitions = topLevels[*ModuleDefinition](d, TypeModuleDefinition)
	d.Implementations = topLevels[*Implementation](d, TypeImplementation)
	d.Collections = topLevels[*Collection](d, TypeCollection)
	d.Activities = topLevels[*Activity](d, TypeActivity)
	d.Designs = topLevels[*Design](d, TypeDesign)
	d.Builds = topLevels[*Build](d, KeyBuild)
	d.Tests = topLevels[*Test](d, KeyTest)
	d.Analyses = topLevels[*Analysis](d, TypeAnalysis)
	return d
}

// Config returns the configuration the document was created with.
func (d *Document) Config() Config { return d.env.cfg }

// Registry returns the type registry.
func (d *Document) Registry() *Registry { return d.env.registry }

// Subscribe streams Created, Updated and Deleted events carrying top-level identities. With
// types given only those kinds are delivered.
func (d *Document) Subscribe(ctx context.Context, types ...pubsub.EventType) <-chan pubsub.Event[string] {
	return d.broker.Subscribe(ctx, types...)
}

// Close shuts down subscribers and drops cached resolutions.
func (d *Document) Close() {
	d.broker.Close()
	d.resolutions.Flush()
}

// Create mints a top-level object of the type filed under key and adds it.
func (d *Document) Create(key, displayID string) (Entity, error) {
	desc, ok := d.env.registry.Lookup(key)
	if !ok {
		return nil, d.env.fail("Create", fmt.Errorf("%w: no type registered under %s", sbolerr.ErrTypeMismatch, key))
	}
	if !desc.TopLevel {
		return nil, d.env.fail("Create", fmt.Errorf("%w: %s is not a top-level type", sbolerr.ErrInvalidArgument, key))
	}
	ent, err := mint(d.env, desc, nil, displayID)
	if err != nil {
		return nil, d.env.fail("Create", err)
	}
	if err := d.add(ent); err != nil {
		return nil, d.env.fail("Create", err)
	}
	return ent, nil
}

// Add attaches a detached top-level object and its subtree.
func (d *Document) Add(ent Entity) error {
	return d.env.fail("Add", d.add(ent))
}

func (d *Document) add(ent Entity) error {
	o := ent.Base()
	desc, ok := d.env.registry.Lookup(o.key)
	if !ok {
		desc = genericDescriptor(o.typeURI, true)
	}
	switch {
	case !desc.TopLevel:
		return fmt.Errorf("%w: %s is not a top-level type", sbolerr.ErrInvalidArgument, o.key)
	case o.URI() == "":
		return fmt.Errorf("%w: object has no identity", sbolerr.ErrInvalidArgument)
	case o.parent != nil:
		return fmt.Errorf("%w: %s is owned by %s", sbolerr.ErrInvalidArgument, o, o.parent)
	case o.doc != nil:
		return fmt.Errorf("%w: %s already belongs to a document", sbolerr.ErrInvalidArgument, o)
	}
	if err := d.checkUnique(o); err != nil {
		return err
	}

	// Every type is filed under its wire type first; an alias then moves the entry to its own key.
	uri := o.URI()
	d.index[uri] = ent
	d.file(o.typeURI, ent)
	d.attach(o)
	if desc.Aliased() {
		d.move(ent, o.typeURI, desc.Key)
	}

	log.Debug(log.CatDocument, "added", "key", desc.Key, "uri", uri)
	d.broker.Publish(pubsub.CreatedEvent, uri)
	return nil
}

func (d *Document) file(key string, ent Entity) {
	if _, ok := d.collections[key]; !ok {
		d.keyOrder = append(d.keyOrder, key)
	}
	d.collections[key] = append(d.collections[key], ent)
}

// move re-files the last entry added under from to the collection to.
func (d *Document) move(ent Entity, from, to string) {
	list := d.collections[from]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == ent {
			d.collections[from] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	d.file(to, ent)
}

// checkUnique fails when any identity in o's subtree is already attached.
func (d *Document) checkUnique(o *Object) error {
	var dup string
	o.walk(func(n *Object) {
		if dup != "" {
			return
		}
		if _, ok := d.nodes[n.URI()]; ok {
			dup = n.URI()
		}
	})
	if dup != "" {
		return fmt.Errorf("%w: %s", sbolerr.ErrDuplicateURI, dup)
	}
	return nil
}

// attach binds o's subtree to the document.
func (d *Document) attach(o *Object) {
	o.walk(func(n *Object) {
		n.doc = d
		n.env = d.env
		d.nodes[n.URI()] = n
	})
}

// detach clears the document links of o's subtree.
func (d *Document) detach(o *Object) {
	o.walk(func(n *Object) {
		if d.nodes[n.URI()] == n {
			delete(d.nodes, n.URI())
		}
		n.doc = nil
	})
	d.resolutions.Flush()
}

// Remove detaches the top-level object at uri and every descendant. An aliased object is only
// filed under its own key, so it is released exactly once.
func (d *Document) Remove(uri string) error {
	ent, ok := d.index[uri]
	if !ok {
		return d.env.fail("Remove", fmt.Errorf("%w: %s", sbolerr.ErrNotFound, uri))
	}
	o := ent.Base()
	list := d.collections[o.key]
	for i, e := range list {
		if e == ent {
			d.collections[o.key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(d.index, uri)
	d.detach(o)

	log.Debug(log.CatDocument, "removed", "key", o.key, "uri", uri)
	d.broker.Publish(pubsub.DeletedEvent, uri)
	return nil
}

// Find reports whether uri names a top-level object. It never fails.
func (d *Document) Find(uri string) bool {
	_, ok := d.index[uri]
	return ok
}

// Lookup returns any attached object, top-level or owned.
func (d *Document) Lookup(uri string) (Entity, bool) {
	o, ok := d.nodes[uri]
	if !ok {
		return nil, false
	}
	return o.Entity(), true
}

// Len returns the number of top-level objects.
func (d *Document) Len() int { return len(d.index) }

// All returns every top-level object grouped by collection key, in insertion order.
func (d *Document) All() []Entity {
	out := make([]Entity, 0, len(d.index))
	for _, key := range d.keyOrder {
		out = append(out, d.collections[key]...)
	}
	return out
}

// Get returns the top-level object at uri as a T. Deferred references of the object are resolved
// through the document index on first access and cached.
func Get[T Entity](d *Document, uri string) (T, error) {
	var zero T
	ent, ok := d.index[uri]
	if !ok {
		return zero, fmt.Errorf("%w: %s", sbolerr.ErrNotFound, uri)
	}
	t, ok := ent.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is a %T, not a %T", sbolerr.ErrTypeMismatch, uri, ent, zero)
	}
	if def, ok := ent.(deferring); ok {
		resolved, err := d.resolver.Resolve(uri, def)
		if err != nil {
			return zero, err
		}
		def.bindResolved(resolved)
	}
	return t, nil
}

// resolve dereferences each deferred reference; unset references resolve to nil.
func (d *Document) resolve(def deferring) ([]Entity, error) {
	refs := def.deferredRefs()
	out := make([]Entity, len(refs))
	for i, ref := range refs {
		target, err := ref.Get()
		if err != nil {
			continue
		}
		ent, ok := d.index[target]
		if !ok {
			return nil, fmt.Errorf("%w: %s of %s refers to %s", sbolerr.ErrNotFound, ref.TypeURI(), def.Base(), target)
		}
		out[i] = ent
	}
	log.Debug(log.CatCache, "resolved references", "uri", def.Base().URI(), "count", len(refs))
	return out, nil
}

// rekey re-files o after its identity changed from old to uri.
func (d *Document) rekey(o *Object, old, uri string) {
	if d.nodes[old] == o {
		delete(d.nodes, old)
	}
	d.nodes[uri] = o
	if ent, ok := d.index[old]; ok && ent.Base() == o {
		delete(d.index, old)
		d.index[uri] = ent
	}
	d.resolutions.Flush()
}

func (d *Document) invalidate(uri string) {
	d.resolutions.Invalidate(uri)
}

func (d *Document) publishUpdated(o *Object) {
	d.broker.Publish(pubsub.UpdatedEvent, o.URI())
}

// TopLevels is the typed view of one document collection key.
type TopLevels[T Entity] struct {
	doc *Document
	key string
}

func topLevels[T Entity](d *Document, key string) *TopLevels[T] {
	return &TopLevels[T]{doc: d, key: key}
}

// Key returns the collection key.
func (c *TopLevels[T]) Key() string { return c.key }

// Create mints and adds an object of the collection's type.
func (c *TopLevels[T]) Create(displayID string) (T, error) {
	var zero T
	ent, err := c.doc.Create(c.key, displayID)
	if err != nil || ent == nil {
		return zero, err
	}
	t, ok := ent.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s constructs a %T, not a %T", sbolerr.ErrTypeMismatch, c.key, ent, zero)
	}
	return t, nil
}

// Add attaches obj. It must be filed under this collection's key.
func (c *TopLevels[T]) Add(obj T) error {
	if obj.Base().Key() != c.key {
		return c.doc.env.fail("Add", fmt.Errorf("%w: %s is filed under %s, not %s",
			sbolerr.ErrTypeMismatch, obj.Base(), obj.Base().Key(), c.key))
	}
	return c.doc.Add(obj)
}

// Get returns the object at uri if it is filed under this collection.
func (c *TopLevels[T]) Get(uri string) (T, error) {
	var zero T
	t, err := Get[T](c.doc, uri)
	if err != nil {
		return zero, err
	}
	if t.Base().Key() != c.key {
		return zero, fmt.Errorf("%w: %s is filed under %s, not %s", sbolerr.ErrTypeMismatch, uri, t.Base().Key(), c.key)
	}
	return t, nil
}

// Find reports whether uri is filed under this collection.
func (c *TopLevels[T]) Find(uri string) bool {
	ent, ok := c.doc.index[uri]
	return ok && ent.Base().Key() == c.key
}

// All returns the objects in insertion order.
func (c *TopLevels[T]) All() []T {
	list := c.doc.collections[c.key]
	out := make([]T, 0, len(list))
	for _, ent := range list {
		if t, ok := ent.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of objects in the collection.
func (c *TopLevels[T]) Len() int { return len(c.doc.collections[c.key]) }

// Remove detaches the object at uri if it is filed under this collection.
func (c *TopLevels[T]) Remove(uri string) error {
	if !c.Find(uri) {
		return c.doc.env.fail("Remove", fmt.Errorf("%w: %s has no %s", sbolerr.ErrNotFound, c.key, uri))
	}
	return c.doc.Remove(uri)
}
