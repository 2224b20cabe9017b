package sbol

import (
	"fmt"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// Triple is one (subject, predicate, object) statement. Object is in lexical form: a quoted
// literal or a bracketed reference.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// IsReference reports whether the object is a reference.
func (t Triple) IsReference() bool { return isReference(t.Object) }

// Value returns the object with quoting or brackets stripped.
func (t Triple) Value() string { return unwrap(t.Object) }

// Literal and Reference build lexical objects for Triple.
func Literal(s string) string   { return literal(s) }
func Reference(s string) string { return reference(s) }

// Triples flattens the document: for each top-level in collection order, every object of its
// subtree emits its type, its property values in declaration order, then one reference per
// owned child.
func (d *Document) Triples() []Triple {
	var out []Triple
	for _, ent := range d.All() {
		ent.Base().walk(func(o *Object) {
			out = append(out, o.triples()...)
		})
	}
	return out
}

func (o *Object) triples() []Triple {
	uri := o.URI()
	out := []Triple{{Subject: uri, Predicate: RDFType, Object: reference(o.typeURI)}}
	if o.key != o.typeURI {
		out = append(out, Triple{Subject: uri, Predicate: PropSysBioType, Object: reference(o.key)})
	}
	for _, p := range o.propOrder {
		if p == PropIdentity {
			continue
		}
		for _, v := range o.props[p] {
			out = append(out, Triple{Subject: uri, Predicate: p, Object: v})
		}
	}
	for _, key := range o.ownedOrder {
		for _, child := range o.owned[key] {
			out = append(out, Triple{Subject: uri, Predicate: key, Object: reference(child.Base().URI())})
		}
	}
	return out
}

type subject struct {
	uri      string
	typeURI  string
	kind     string
	triples  []Triple
	ent      Entity
	owned    bool
	topLevel bool
}

// Load rebuilds objects from triples and adds the resulting top-levels. A reference under one of
// an object's owned keys to another subject in the batch makes that subject a child; every
// remaining subject is added as a top-level. Wire types without a descriptor load as Generic.
func (d *Document) Load(triples []Triple) error {
	subjects, order, err := groupSubjects(triples)
	if err != nil {
		return err
	}

	for _, uri := range order {
		s := subjects[uri]
		desc, ok := d.env.registry.ForWire(s.typeURI, s.kind)
		if !ok {
			desc = genericDescriptor(s.typeURI, true)
		}
		s.topLevel = desc.TopLevel
		s.ent = build(desc, d.env)
		o := s.ent.Base()
		for k := range o.props {
			o.props[k] = nil
		}
		o.setRaw(PropIdentity, reference(uri))
	}

	for _, uri := range order {
		s := subjects[uri]
		o := s.ent.Base()
		filled := make(map[string]bool)
		for _, t := range s.triples {
			if t.Predicate == PropSysBioType && o.key != o.typeURI {
				continue
			}
			if _, ownedKey := o.ownedTypes[t.Predicate]; ownedKey && t.IsReference() {
				if child, ok := subjects[t.Value()]; ok {
					if child.owned || child == s {
						return fmt.Errorf("%w: %s is owned twice", sbolerr.ErrInvalidArgument, child.uri)
					}
					child.owned = true
					child.ent.Base().parent = o
					o.owned[t.Predicate] = append(o.owned[t.Predicate], child.ent)
					continue
				}
			}
			if !isLiteral(t.Object) && !isReference(t.Object) {
				return fmt.Errorf("%w: object %q of %s %s is neither a literal nor a reference",
					sbolerr.ErrInvalidArgument, t.Object, uri, t.Predicate)
			}
			if !filled[t.Predicate] {
				filled[t.Predicate] = true
				o.declare(t.Predicate, o.guarded(t.Predicate))
				o.props[t.Predicate] = nil
			}
			o.props[t.Predicate] = append(o.props[t.Predicate], t.Object)
		}
	}

	added := 0
	for _, uri := range order {
		s := subjects[uri]
		if s.owned {
			continue
		}
		if !s.topLevel {
			return fmt.Errorf("%w: %s of type %s has no owner", sbolerr.ErrInvalidArgument, uri, s.typeURI)
		}
		if err := d.add(s.ent); err != nil {
			return err
		}
		added++
	}
	for _, uri := range order {
		if subjects[uri].ent.Base().doc != d {
			return fmt.Errorf("%w: %s is part of an ownership cycle", sbolerr.ErrInvalidArgument, uri)
		}
	}

	log.Info(log.CatDocument, "loaded", "triples", len(triples), "objects", len(order), "top_levels", added)
	return nil
}

func groupSubjects(triples []Triple) (map[string]*subject, []string, error) {
	subjects := make(map[string]*subject)
	var order []string
	for _, t := range triples {
		if t.Subject == "" || t.Predicate == "" {
			return nil, nil, fmt.Errorf("%w: triple with empty subject or predicate", sbolerr.ErrInvalidArgument)
		}
		s, ok := subjects[t.Subject]
		if !ok {
			s = &subject{uri: t.Subject}
			subjects[t.Subject] = s
			order = append(order, t.Subject)
		}
		if t.Predicate == RDFType {
			if s.typeURI == "" {
				s.typeURI = t.Value()
			}
			continue
		}
		if t.Predicate == PropSysBioType && t.IsReference() && s.kind == "" {
			s.kind = t.Value()
		}
		s.triples = append(s.triples, t)
	}
	for _, uri := range order {
		if subjects[uri].typeURI == "" {
			return nil, nil, fmt.Errorf("%w: %s has no %s", sbolerr.ErrInvalidArgument, uri, RDFType)
		}
	}
	return subjects, order, nil
}
