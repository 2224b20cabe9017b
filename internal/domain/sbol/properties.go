package sbol

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// DateTimeLayout is the stamp format of DateTimeProperty (xsd:dateTime without zone).
const DateTimeLayout = "2006-01-02T15:04:05"

// now is swapped in tests.
var now = time.Now

// property binds a view to one (owner, property type) pair.
type property struct {
	owner   *Object
	typeURI string
	guard   bool // derived from the URI scheme in compliant mode
}

// TypeURI returns the property type.
func (p property) TypeURI() string { return p.typeURI }

// store returns the owner's value list for reading.
func (p property) store() ([]string, error) {
	if p.owner == nil {
		return nil, fmt.Errorf("%w: %s", sbolerr.ErrOrphanObject, p.typeURI)
	}
	values, ok := p.owner.props[p.typeURI]
	if !ok {
		return nil, fmt.Errorf("%w: %s does not have a property of type %s", sbolerr.ErrTypeMismatch, p.owner, p.typeURI)
	}
	return values, nil
}

func (p property) first() (string, error) {
	values, err := p.store()
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%w: %s of %s has not been set", sbolerr.ErrNotFound, p.typeURI, p.owner)
	}
	return values[0], nil
}

// writable checks the binding and the compliance guard before a mutation.
func (p property) writable() error {
	if _, err := p.store(); err != nil {
		return err
	}
	if p.guard && p.owner.env.ids.Compliant() {
		return fmt.Errorf("%w: %s is derived from the compliant URI scheme and cannot be assigned",
			sbolerr.ErrCompliance, p.typeURI)
	}
	return nil
}

// put replaces the first value, or appends when the list is empty.
func (p property) put(lexical string) {
	values := p.owner.props[p.typeURI]
	if len(values) == 0 {
		p.owner.props[p.typeURI] = []string{lexical}
	} else {
		values[0] = lexical
	}
	p.owner.touch()
}

func (p property) push(lexical string) {
	p.owner.props[p.typeURI] = append(p.owner.props[p.typeURI], lexical)
	p.owner.touch()
}

// fail routes a mutator error through the owner's silent-failure policy.
func (p property) fail(op string, err error) error {
	if p.owner == nil || p.owner.env == nil {
		return err
	}
	return p.owner.env.fail(op, err)
}

// Len returns the number of stored values; 0 for unbound views.
func (p property) Len() int {
	values, err := p.store()
	if err != nil {
		return 0
	}
	return len(values)
}

// Clear removes every stored value.
func (p property) Clear() error {
	if err := p.writable(); err != nil {
		return p.fail("Clear", err)
	}
	p.owner.props[p.typeURI] = nil
	p.owner.touch()
	return nil
}

// TextProperty is a view over literal values.
type TextProperty struct{ property }

// Get returns the first value with its quotes stripped.
func (p TextProperty) Get() (string, error) {
	v, err := p.first()
	if err != nil {
		return "", err
	}
	return unwrap(v), nil
}

// All returns every value with quotes stripped.
func (p TextProperty) All() ([]string, error) {
	values, err := p.store()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = unwrap(v)
	}
	return out, nil
}

// Set replaces the first value.
func (p TextProperty) Set(value string) error {
	if err := p.writable(); err != nil {
		return p.fail("TextProperty.Set", err)
	}
	p.put(literal(value))
	return nil
}

// Add appends a value.
func (p TextProperty) Add(value string) error {
	if err := p.writable(); err != nil {
		return p.fail("TextProperty.Add", err)
	}
	p.push(literal(value))
	return nil
}

// URIProperty is a view over reference values.
type URIProperty struct{ property }

// Get returns the first value with its angle brackets stripped.
func (p URIProperty) Get() (string, error) {
	v, err := p.first()
	if err != nil {
		return "", err
	}
	return unwrap(v), nil
}

// All returns every value with brackets stripped.
func (p URIProperty) All() ([]string, error) {
	values, err := p.store()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = unwrap(v)
	}
	return out, nil
}

// Set replaces the first value.
func (p URIProperty) Set(uri string) error {
	if err := p.writable(); err != nil {
		return p.fail("URIProperty.Set", err)
	}
	p.put(reference(uri))
	return nil
}

// Add appends a value.
func (p URIProperty) Add(uri string) error {
	if err := p.writable(); err != nil {
		return p.fail("URIProperty.Add", err)
	}
	p.push(reference(uri))
	return nil
}

// IntProperty is a view over integer literals.
type IntProperty struct{ property }

// Get parses the first value.
func (p IntProperty) Get() (int, error) {
	v, err := p.first()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(unwrap(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s of %s is not an integer: %q", sbolerr.ErrInvalidArgument, p.typeURI, p.owner, unwrap(v))
	}
	return n, nil
}

// Set replaces the first value.
func (p IntProperty) Set(n int) error {
	if err := p.writable(); err != nil {
		return p.fail("IntProperty.Set", err)
	}
	p.put(literal(strconv.Itoa(n)))
	return nil
}

// DateTimeProperty is a view over timestamp literals.
type DateTimeProperty struct{ TextProperty }

// Time parses the first value.
func (p DateTimeProperty) Time() (time.Time, error) {
	s, err := p.Get()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a timestamp: %q", sbolerr.ErrInvalidArgument, p.typeURI, s)
	}
	return t, nil
}

// Stamp sets the value to the current UTC time and returns it.
func (p DateTimeProperty) Stamp() (string, error) {
	stamp := now().UTC().Format(DateTimeLayout)
	if err := p.writable(); err != nil {
		return "", err
	}
	p.put(literal(stamp))
	return stamp, nil
}

// VersionProperty is a text view with version arithmetic.
type VersionProperty struct{ TextProperty }

// Parsed returns the tokenized version.
func (p VersionProperty) Parsed() (identity.Version, error) {
	s, err := p.Get()
	if err != nil {
		return identity.Version{}, err
	}
	return identity.ParseVersion(s), nil
}

// Major returns the integer prefix of the first token.
func (p VersionProperty) Major() (int, error) { return p.component(identity.MajorComponent) }

// Minor returns the integer prefix of the second token.
func (p VersionProperty) Minor() (int, error) { return p.component(identity.MinorComponent) }

// Patch returns the integer prefix of the third token.
func (p VersionProperty) Patch() (int, error) { return p.component(identity.PatchComponent) }

func (p VersionProperty) component(i int) (int, error) {
	v, err := p.Parsed()
	if err != nil {
		return 0, err
	}
	return v.Component(i)
}

// IncrementMajor bumps the major component.
func (p VersionProperty) IncrementMajor() error { return p.bump(identity.MajorComponent, 1) }

// IncrementMinor bumps the minor component.
func (p VersionProperty) IncrementMinor() error { return p.bump(identity.MinorComponent, 1) }

// IncrementPatch bumps the patch component.
func (p VersionProperty) IncrementPatch() error { return p.bump(identity.PatchComponent, 1) }

// DecrementMajor lowers the major component.
func (p VersionProperty) DecrementMajor() error { return p.bump(identity.MajorComponent, -1) }

// DecrementMinor lowers the minor component.
func (p VersionProperty) DecrementMinor() error { return p.bump(identity.MinorComponent, -1) }

// DecrementPatch lowers the patch component.
func (p VersionProperty) DecrementPatch() error { return p.bump(identity.PatchComponent, -1) }

// bump rewrites the version and, in compliant mode, the owner's identity as
// persistentIdentity/newVersion.
func (p VersionProperty) bump(component, delta int) error {
	v, err := p.Parsed()
	if err != nil {
		return p.fail("VersionProperty.bump", err)
	}
	next, err := v.Bump(component, delta)
	if err != nil {
		return p.fail("VersionProperty.bump", err)
	}

	o := p.owner
	uri := ""
	if o.env.ids.Compliant() {
		pid, err := o.PersistentIdentity.Get()
		if err != nil {
			return p.fail("VersionProperty.bump", err)
		}
		uri = pid + "/" + next.String()
		if o.doc != nil && uri != o.URI() {
			if _, taken := o.doc.nodes[uri]; taken {
				return p.fail("VersionProperty.bump", fmt.Errorf("%w: %s", sbolerr.ErrDuplicateURI, uri))
			}
		}
	}
	o.setRaw(PropVersion, literal(next.String()))
	if uri != "" {
		o.setIdentity(uri)
	}
	log.Debug(log.CatIdentity, "version changed", "object", o.String(), "from", v.String(), "to", next.String())
	if o.doc != nil {
		o.doc.publishUpdated(o)
	}
	return nil
}

// ReferencedObject is a URI view tagged with the type it refers to.
type ReferencedObject struct {
	URIProperty
	referenceType string
}

// ReferenceType returns the type of the referenced object.
func (p ReferencedObject) ReferenceType() string { return p.referenceType }

// Set rewrites the first stored entry as a reference. It fails if that entry is a literal.
func (p ReferencedObject) Set(uri string) error {
	values, err := p.store()
	if err != nil {
		return p.fail("ReferencedObject.Set", err)
	}
	if len(values) > 0 && !isReference(values[0]) {
		return p.fail("ReferencedObject.Set", fmt.Errorf("%w: %s of %s holds a literal, not a reference",
			sbolerr.ErrTypeMismatch, p.typeURI, p.owner))
	}
	p.put(reference(uri))
	return nil
}

// SetReference sets the reference from a display id: homespace/Class/displayId/1.0.0 in
// compliant mode, homespace/displayId when only a homespace is set, else displayId unchanged.
func (p ReferencedObject) SetReference(displayID string) error {
	if p.owner == nil {
		return fmt.Errorf("%w: %s", sbolerr.ErrOrphanObject, p.typeURI)
	}
	ids := p.owner.env.ids
	switch {
	case ids.Compliant():
		return p.Set(ids.CompliantURI(p.referenceType, displayID, identity.DefaultVersion))
	case ids.HasHomespace():
		return p.Set(ids.NonCompliantURI(displayID))
	default:
		return p.Set(displayID)
	}
}

// AddReference appends a reference.
func (p ReferencedObject) AddReference(uri string) error {
	if _, err := p.store(); err != nil {
		return p.fail("ReferencedObject.AddReference", err)
	}
	p.push(reference(uri))
	return nil
}

// At returns the raw nth entry, brackets preserved.
func (p ReferencedObject) At(i int) (string, error) {
	values, err := p.store()
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(values) {
		return "", fmt.Errorf("%w: %s of %s has no entry %d", sbolerr.ErrNotFound, p.typeURI, p.owner, i)
	}
	return values[i], nil
}

// Property constructors used by the typed entities.

func textProperty(o *Object, typeURI string) TextProperty {
	return TextProperty{property: o.declare(typeURI, false)}
}

func uriProperty(o *Object, typeURI string) URIProperty {
	return URIProperty{property: o.declare(typeURI, false)}
}

func intProperty(o *Object, typeURI string) IntProperty {
	return IntProperty{property: o.declare(typeURI, false)}
}

func dateTimeProperty(o *Object, typeURI string) DateTimeProperty {
	return DateTimeProperty{textProperty(o, typeURI)}
}

func referencedObject(o *Object, typeURI, referenceType string) ReferencedObject {
	return ReferencedObject{URIProperty: uriProperty(o, typeURI), referenceType: referenceType}
}
