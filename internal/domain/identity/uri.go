// Package identity mints and parses object identifiers.
//
// In compliant mode an identity is derived rather than assigned:
//
//	persistentIdentity = homespace/TypeName/displayId
//	identity           = persistentIdentity/version
//
// Children nest under their parent's persistent identity. In non-compliant mode identities are
// supplied by the caller and optionally prefixed with the homespace.
package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// DefaultVersion is assigned to objects created without an explicit version.
const DefaultVersion = "1.0.0"

// Settings holds the URI-minting switches. A zero Settings is non-compliant with no homespace.
type Settings struct {
	Homespace     string
	CompliantURIs bool // derive identities from homespace, type, displayId and version
	TypedURIs     bool // include the type name segment in compliant identities
}

// Service mints identifiers for one Settings value.
type Service struct {
	settings Settings
	randomID func() string
}

// NewService returns a Service bound to settings. A trailing slash on the homespace is dropped.
func NewService(settings Settings) *Service {
	settings.Homespace = strings.TrimSuffix(settings.Homespace, "/")
	return &Service{settings: settings, randomID: RandomIdentifier}
}

// Settings returns the bound settings.
func (s *Service) Settings() Settings { return s.settings }

// Homespace returns the configured namespace prefix.
func (s *Service) Homespace() string { return s.settings.Homespace }

// HasHomespace reports whether a homespace is configured.
func (s *Service) HasHomespace() bool { return s.settings.Homespace != "" }

// Compliant reports whether compliant URIs are enabled.
func (s *Service) Compliant() bool { return s.settings.CompliantURIs }

// Typed reports whether compliant URIs carry the type name segment.
func (s *Service) Typed() bool { return s.settings.TypedURIs }

// CompliantURI returns homespace/TypeName/displayId/version, or "" outside compliant mode.
func (s *Service) CompliantURI(typeURI, displayID, version string) string {
	if !s.settings.CompliantURIs {
		return ""
	}
	return s.settings.Homespace + "/" + localName(typeURI) + "/" + displayID + "/" + version
}

// NestedCompliantURI returns homespace/ParentType/ChildType/displayId/version, or "" outside
// compliant mode.
func (s *Service) NestedCompliantURI(parentType, childType, displayID, version string) string {
	if !s.settings.CompliantURIs {
		return ""
	}
	return s.settings.Homespace + "/" + localName(parentType) + "/" + localName(childType) + "/" + displayID + "/" + version
}

// PersistentIdentity returns the version-independent identity of a top-level object. The type
// segment is present only with typed URIs. Returns "" outside compliant mode.
func (s *Service) PersistentIdentity(typeURI, displayID string) string {
	if !s.settings.CompliantURIs {
		return ""
	}
	if s.settings.TypedURIs {
		return s.settings.Homespace + "/" + localName(typeURI) + "/" + displayID
	}
	return s.settings.Homespace + "/" + displayID
}

// ChildPersistentIdentity nests displayID under a parent's persistent identity.
// Returns "" outside compliant mode.
func (s *Service) ChildPersistentIdentity(parentPersistentIdentity, displayID string) string {
	if !s.settings.CompliantURIs {
		return ""
	}
	return parentPersistentIdentity + "/" + displayID
}

// NonCompliantURI prefixes uri with the homespace when one is set. Returns "" in compliant mode.
func (s *Service) NonCompliantURI(uri string) string {
	switch {
	case s.settings.CompliantURIs:
		return ""
	case s.HasHomespace():
		return s.settings.Homespace + "/" + uri
	default:
		return uri
	}
}

// AutoconstructURI appends a random identifier chain to the homespace. It requires non-compliant
// mode and a homespace.
func (s *Service) AutoconstructURI() (string, error) {
	if s.settings.CompliantURIs {
		return "", fmt.Errorf("%w: autoconstructed URIs require non-compliant mode", sbolerr.ErrCompliance)
	}
	if !s.HasHomespace() {
		return "", fmt.Errorf("%w: autoconstructed URIs require a homespace", sbolerr.ErrCompliance)
	}
	return s.settings.Homespace + "/" + s.randomID(), nil
}

// RandomIdentifier returns 16 random decimal digits grouped in fours, e.g. 0415-9921-3370-8264.
func RandomIdentifier() string {
	id := uuid.New()
	var b strings.Builder
	for i, octet := range id {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte('0' + octet%10)
	}
	return b.String()
}

// ParseClassName returns the local name of a type URI: the text after the last '#', or after the
// last '/' when there is no '#'.
func ParseClassName(uri string) (string, error) {
	i, err := separator(uri)
	if err != nil {
		return "", err
	}
	return uri[i+1:], nil
}

// ParseNamespace returns the URI up to and including its last '#' (or last '/').
func ParseNamespace(uri string) (string, error) {
	i, err := separator(uri)
	if err != nil {
		return "", err
	}
	return uri[:i+1], nil
}

// ParsePropertyName returns the local name of a property-type URI.
func ParsePropertyName(uri string) (string, error) {
	return ParseClassName(uri)
}

func separator(uri string) (int, error) {
	if i := strings.LastIndexByte(uri, '#'); i >= 0 {
		return i, nil
	}
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q has no namespace separator", sbolerr.ErrInvalidArgument, uri)
}

// localName is ParseClassName for callers that already hold a well-formed type URI.
func localName(typeURI string) string {
	name, err := ParseClassName(typeURI)
	if err != nil {
		return typeURI
	}
	return name
}
