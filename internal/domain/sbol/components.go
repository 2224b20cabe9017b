package sbol

// ComponentDefinition describes a genetic part. A composite definition holds Components and the
// SequenceConstraints ordering them; a leaf references its own Sequence.
type ComponentDefinition struct {
	*Object
	Types               URIProperty
	Roles               URIProperty
	Sequence            ReferencedObject
	Components          *OwnedObjects[*Component]
	SequenceConstraints *OwnedObjects[*SequenceConstraint]
}

func newComponentDefinition(o *Object) Entity {
	cd := &ComponentDefinition{
		Object:   o,
		Types:    uriProperty(o, PropTypes),
		Roles:    uriProperty(o, PropRoles),
		Sequence: referencedObject(o, PropSequence, TypeSequence),
	}
	cd.Components = ownedObjects[*Component](o, PropComponents, TypeComponent)
	cd.SequenceConstraints = ownedObjects[*SequenceConstraint](o, PropSequenceConstraints, TypeSequenceConstraint)
	o.setRaw(PropTypes, reference(TypeDNARegion))
	return cd
}

// Component instantiates a ComponentDefinition inside a composite.
type Component struct {
	*Object
	Definition ReferencedObject
	Access     URIProperty
	Roles      URIProperty
}

func newComponent(o *Object) Entity {
	c := &Component{
		Object:     o,
		Definition: referencedObject(o, PropDefinition, TypeComponentDefinition),
		Access:     uriProperty(o, PropAccess),
		Roles:      uriProperty(o, PropRoles),
	}
	o.setRaw(PropAccess, reference(AccessPublic))
	return c
}

// SequenceConstraint relates two sibling Components. With the precedes restriction the subject
// sits immediately before the object.
type SequenceConstraint struct {
	*Object
	SubjectRef  ReferencedObject
	ObjectRef   ReferencedObject
	Restriction URIProperty
}

func newSequenceConstraint(o *Object) Entity {
	sc := &SequenceConstraint{
		Object:      o,
		SubjectRef:  referencedObject(o, PropSubject, TypeComponent),
		ObjectRef:   referencedObject(o, PropObject, TypeComponent),
		Restriction: uriProperty(o, PropRestriction),
	}
	o.setRaw(PropRestriction, reference(RestrictionPrecedes))
	return sc
}

// precedes returns the (subject, object) pair of a precedes constraint.
func (sc *SequenceConstraint) precedes() (subject, object string, ok bool) {
	restriction, err := sc.Restriction.Get()
	if err != nil || restriction != RestrictionPrecedes {
		return "", "", false
	}
	subject, err = sc.SubjectRef.Get()
	if err != nil {
		return "", "", false
	}
	object, err = sc.ObjectRef.Get()
	if err != nil {
		return "", "", false
	}
	return subject, object, true
}

// Sequence holds primary structure as an encoded string.
type Sequence struct {
	*Object
	Elements TextProperty
	Encoding URIProperty
}

func newSequence(o *Object) Entity {
	s := &Sequence{
		Object:   o,
		Elements: textProperty(o, PropElements),
		Encoding: uriProperty(o, PropEncoding),
	}
	o.setRaw(PropEncoding, reference(EncodingIUPACDNA))
	return s
}
