package identity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// Component indices into a version string.
const (
	MajorComponent = 0
	MinorComponent = 1
	PatchComponent = 2
)

var (
	versionDelimiter = regexp.MustCompile(`[-.\\_]`)
	numericPrefix    = regexp.MustCompile(`^([0-9]+)(.*)$`)
)

// Version is a tokenized version string. Tokens are separated by any of - . \ _ and each
// delimiter is remembered so String reproduces the original spelling.
type Version struct {
	tokens     []string
	delimiters []string
}

// ParseVersion tokenizes s. It never fails; malformed components surface when read or bumped.
func ParseVersion(s string) Version {
	return Version{
		tokens:     versionDelimiter.Split(s, -1),
		delimiters: versionDelimiter.FindAllString(s, -1),
	}
}

// String re-joins the tokens with their original delimiters.
func (v Version) String() string {
	var b strings.Builder
	for i, tok := range v.tokens {
		b.WriteString(tok)
		if i < len(v.delimiters) {
			b.WriteString(v.delimiters[i])
		}
	}
	return b.String()
}

// Len returns the number of tokens.
func (v Version) Len() int { return len(v.tokens) }

// Component returns the integer prefix of token i.
func (v Version) Component(i int) (int, error) {
	n, _, err := v.split(i)
	return n, err
}

// Major returns the integer prefix of the first token.
func (v Version) Major() (int, error) { return v.Component(MajorComponent) }

// Minor returns the integer prefix of the second token.
func (v Version) Minor() (int, error) { return v.Component(MinorComponent) }

// Patch returns the integer prefix of the third token.
func (v Version) Patch() (int, error) { return v.Component(PatchComponent) }

// IncrementMajor bumps token 0, keeping any non-numeric suffix.
func (v Version) IncrementMajor() (Version, error) { return v.Bump(MajorComponent, 1) }

// IncrementMinor bumps token 1.
func (v Version) IncrementMinor() (Version, error) { return v.Bump(MinorComponent, 1) }

// IncrementPatch bumps token 2.
func (v Version) IncrementPatch() (Version, error) { return v.Bump(PatchComponent, 1) }

// DecrementMajor lowers token 0; it fails rather than go below zero.
func (v Version) DecrementMajor() (Version, error) { return v.Bump(MajorComponent, -1) }

// DecrementMinor lowers token 1.
func (v Version) DecrementMinor() (Version, error) { return v.Bump(MinorComponent, -1) }

// DecrementPatch lowers token 2.
func (v Version) DecrementPatch() (Version, error) { return v.Bump(PatchComponent, -1) }

// Bump adds delta to the integer prefix of token i and returns the new version. The receiver is
// not modified.
func (v Version) Bump(i, delta int) (Version, error) {
	n, suffix, err := v.split(i)
	if err != nil {
		return Version{}, err
	}
	if n+delta < 0 {
		return Version{}, fmt.Errorf("%w: version %q component %d cannot go below zero",
			sbolerr.ErrInvalidArgument, v.String(), i)
	}
	tokens := append([]string(nil), v.tokens...)
	tokens[i] = strconv.Itoa(n+delta) + suffix
	return Version{tokens: tokens, delimiters: v.delimiters}, nil
}

func (v Version) split(i int) (int, string, error) {
	if i < 0 || i >= len(v.tokens) {
		return 0, "", fmt.Errorf("%w: version %q has %d components, need %d",
			sbolerr.ErrInvalidArgument, v.String(), len(v.tokens), i+1)
	}
	m := numericPrefix.FindStringSubmatch(v.tokens[i])
	if m == nil {
		return 0, "", fmt.Errorf("%w: version component %q does not begin with an integer",
			sbolerr.ErrInvalidArgument, v.tokens[i])
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("%w: version component %q: %v", sbolerr.ErrInvalidArgument, v.tokens[i], err)
	}
	return n, m[2], nil
}
