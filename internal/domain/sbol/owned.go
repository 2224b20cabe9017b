package sbol

import (
	"fmt"

	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// mint builds an object of desc and assigns its identity for the active URI mode.
//
// Compliant top-level:  persistentIdentity(Key, displayId) + "/1.0.0"
// Compliant child:      parent.persistentIdentity + "/" + displayId + "/" + parent.version
// Non-compliant:        homespace + "/" + displayId, or an autoconstructed URI for an empty id
func mint(e *env, desc TypeDescriptor, parent *Object, displayID string) (Entity, error) {
	version := identity.DefaultVersion
	var pid, uri string

	switch {
	case e.ids.Compliant():
		if displayID == "" {
			return nil, fmt.Errorf("%w: compliant URIs need a display id", sbolerr.ErrInvalidArgument)
		}
		if !e.ids.HasHomespace() {
			return nil, fmt.Errorf("%w: compliant URIs need a homespace", sbolerr.ErrCompliance)
		}
		if parent == nil {
			pid = e.ids.PersistentIdentity(desc.Key, displayID)
		} else {
			parentPID, err := parent.PersistentIdentity.Get()
			if err != nil {
				return nil, fmt.Errorf("%w: parent %s has no persistent identity", sbolerr.ErrCompliance, parent)
			}
			if v, err := parent.Version.Get(); err == nil {
				version = v
			}
			pid = e.ids.ChildPersistentIdentity(parentPID, displayID)
		}
		uri = pid + "/" + version
	case displayID == "":
		var err error
		if uri, err = e.ids.AutoconstructURI(); err != nil {
			return nil, err
		}
	default:
		uri = e.ids.NonCompliantURI(displayID)
	}

	ent := build(desc, e)
	o := ent.Base()
	o.setRaw(PropIdentity, reference(uri))
	if pid != "" {
		o.setRaw(PropPersistentIdentity, reference(pid))
	}
	if displayID != "" {
		o.setRaw(PropDisplayID, literal(displayID))
	}
	o.setRaw(PropVersion, literal(version))
	log.Debug(log.CatIdentity, "minted", "type", desc.Key, "uri", uri)
	return ent, nil
}

// New constructs a detached object of the type filed under key, for later Document.Add or
// OwnedObjects.Add. The default registry is used.
func New[T Entity](cfg Config, key, displayID string) (T, error) {
	var zero T
	e := newEnv(cfg, nil)
	desc, ok := e.registry.Lookup(key)
	if !ok {
		return zero, fmt.Errorf("%w: no type registered under %s", sbolerr.ErrTypeMismatch, key)
	}
	ent, err := mint(e, desc, nil, displayID)
	if err != nil {
		return zero, err
	}
	t, ok := ent.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s does not construct a %T", sbolerr.ErrTypeMismatch, key, zero)
	}
	return t, nil
}

// OwnedObjects is the typed slot of one child collection on a parent. Children belong to
// exactly one parent.
type OwnedObjects[T Entity] struct {
	owner    *Object
	key      string
	childKey string
}

func ownedObjects[T Entity](owner *Object, key, childKey string) *OwnedObjects[T] {
	owner.declareOwned(key, childKey)
	return &OwnedObjects[T]{owner: owner, key: key, childKey: childKey}
}

// Key returns the collection predicate.
func (s *OwnedObjects[T]) Key() string { return s.key }

// Create mints a child named displayID and links it under the owner.
func (s *OwnedObjects[T]) Create(displayID string) (T, error) {
	var zero T
	desc, ok := s.owner.env.registry.Lookup(s.childKey)
	if !ok {
		return zero, s.owner.env.fail("Create", fmt.Errorf("%w: no type registered under %s", sbolerr.ErrTypeMismatch, s.childKey))
	}
	ent, err := mint(s.owner.env, desc, s.owner, displayID)
	if err != nil {
		return zero, s.owner.env.fail("Create", err)
	}
	child, ok := ent.(T)
	if !ok {
		return zero, s.owner.env.fail("Create", fmt.Errorf("%w: %s does not construct a %T", sbolerr.ErrTypeMismatch, s.childKey, zero))
	}
	if err := s.link(ent); err != nil {
		return zero, s.owner.env.fail("Create", err)
	}
	return child, nil
}

// Add links an existing detached child under the owner.
func (s *OwnedObjects[T]) Add(child T) error {
	o := child.Base()
	if o.parent != nil || o.doc != nil {
		return s.owner.env.fail("Add", fmt.Errorf("%w: %s is already owned", sbolerr.ErrInvalidArgument, o))
	}
	if o.URI() == "" {
		return s.owner.env.fail("Add", fmt.Errorf("%w: child has no identity", sbolerr.ErrInvalidArgument))
	}
	return s.owner.env.fail("Add", s.link(child))
}

func (s *OwnedObjects[T]) link(ent Entity) error {
	o := ent.Base()
	uri := o.URI()
	for _, sibling := range s.owner.owned[s.key] {
		if sibling.Base().URI() == uri {
			return fmt.Errorf("%w: %s already exists under %s", sbolerr.ErrDuplicateURI, uri, s.owner)
		}
	}
	if doc := s.owner.doc; doc != nil {
		if err := doc.checkUnique(o); err != nil {
			return err
		}
	}

	o.parent = s.owner
	s.owner.owned[s.key] = append(s.owner.owned[s.key], ent)
	if doc := s.owner.doc; doc != nil {
		doc.attach(o)
	} else {
		o.walk(func(n *Object) { n.env = s.owner.env })
	}
	log.Debug(log.CatGraph, "child linked", "parent", s.owner.String(), "child", uri)
	return nil
}

// Get returns the child with identity uri.
func (s *OwnedObjects[T]) Get(uri string) (T, error) {
	var zero T
	for _, ent := range s.owner.owned[s.key] {
		if ent.Base().URI() != uri {
			continue
		}
		t, ok := ent.(T)
		if !ok {
			return zero, fmt.Errorf("%w: %s is a %T, not a %T", sbolerr.ErrTypeMismatch, uri, ent, zero)
		}
		return t, nil
	}
	return zero, fmt.Errorf("%w: %s has no child %s", sbolerr.ErrNotFound, s.owner, uri)
}

// Find reports whether a child with identity uri exists.
func (s *OwnedObjects[T]) Find(uri string) bool {
	for _, ent := range s.owner.owned[s.key] {
		if ent.Base().URI() == uri {
			return true
		}
	}
	return false
}

// At returns the ith child.
func (s *OwnedObjects[T]) At(i int) (T, error) {
	var zero T
	children := s.owner.owned[s.key]
	if i < 0 || i >= len(children) {
		return zero, fmt.Errorf("%w: %s has %d children under %s, no index %d", sbolerr.ErrNotFound, s.owner, len(children), s.key, i)
	}
	t, ok := children[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: child %d is a %T, not a %T", sbolerr.ErrTypeMismatch, i, children[i], zero)
	}
	return t, nil
}

// All returns the children in insertion order. Children of another runtime type are skipped.
func (s *OwnedObjects[T]) All() []T {
	children := s.owner.owned[s.key]
	out := make([]T, 0, len(children))
	for _, ent := range children {
		if t, ok := ent.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of children.
func (s *OwnedObjects[T]) Len() int { return len(s.owner.owned[s.key]) }

// Remove unlinks the child with identity uri and detaches its subtree from the document.
func (s *OwnedObjects[T]) Remove(uri string) error {
	children := s.owner.owned[s.key]
	for i, ent := range children {
		o := ent.Base()
		if o.URI() != uri {
			continue
		}
		s.owner.owned[s.key] = append(children[:i:i], children[i+1:]...)
		if doc := s.owner.doc; doc != nil {
			doc.detach(o)
		}
		o.parent = nil
		log.Debug(log.CatGraph, "child removed", "parent", s.owner.String(), "child", uri)
		return nil
	}
	return s.owner.env.fail("Remove", fmt.Errorf("%w: %s has no child %s", sbolerr.ErrNotFound, s.owner, uri))
}
