package sbol

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

func compliant() Config {
	return Config{Settings: identity.Settings{Homespace: "http://examples.com", CompliantURIs: true, TypedURIs: true}}
}

func nonCompliant() Config {
	return Config{Settings: identity.Settings{Homespace: "http://examples.com"}}
}

func TestTextProperty_GetStripsQuotes(t *testing.T) {
	seq, err := New[*Sequence](nonCompliant(), TypeSequence, "s")
	require.NoError(t, err)

	require.NoError(t, seq.Elements.Set("acgt"))
	got, err := seq.Elements.Get()
	require.NoError(t, err)
	require.Equal(t, "acgt", got)

	raw, ok := seq.Values(PropElements)
	require.True(t, ok)
	require.Equal(t, []string{`"acgt"`}, raw)
}

func TestTextProperty_EmptyIsNotFound(t *testing.T) {
	seq, err := New[*Sequence](nonCompliant(), TypeSequence, "s")
	require.NoError(t, err)

	_, err = seq.Elements.Get()
	require.ErrorIs(t, err, sbolerr.ErrNotFound)
}

func TestProperty_UndeclaredIsTypeMismatch(t *testing.T) {
	seq, err := New[*Sequence](nonCompliant(), TypeSequence, "s")
	require.NoError(t, err)

	view := TextProperty{property: property{owner: seq.Object, typeURI: PropRoles}}
	_, err = view.Get()
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)
}

func TestProperty_UnboundIsOrphan(t *testing.T) {
	var view TextProperty
	_, err := view.Get()
	require.ErrorIs(t, err, sbolerr.ErrOrphanObject)

	err = view.Set("x")
	require.ErrorIs(t, err, sbolerr.ErrOrphanObject)
	require.Zero(t, view.Len())
}

func TestTextProperty_AddAppends(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	require.NoError(t, cd.Roles.Add("http://identifiers.org/so/SO:0000141"))
	require.NoError(t, cd.Roles.Add("http://identifiers.org/so/SO:0000167"))
	roles, err := cd.Roles.All()
	require.NoError(t, err)
	require.Equal(t, []string{"http://identifiers.org/so/SO:0000141", "http://identifiers.org/so/SO:0000167"}, roles)
	require.Equal(t, 2, cd.Roles.Len())

	require.NoError(t, cd.Roles.Clear())
	require.Zero(t, cd.Roles.Len())
}

func TestIntProperty(t *testing.T) {
	m, err := New[*Model](nonCompliant(), TypeModel, "m")
	require.NoError(t, err)

	count := intProperty(m.Object, "http://examples.com#count")
	require.NoError(t, count.Set(42))
	n, err := count.Get()
	require.NoError(t, err)
	require.Equal(t, 42, n)

	require.NoError(t, m.SetValues("http://examples.com#count", []string{`"forty"`}))
	_, err = count.Get()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
}

func TestDateTimeProperty_StampCoversDecember(t *testing.T) {
	restore := now
	t.Cleanup(func() { now = restore })

	a, err := New[*Activity](nonCompliant(), TypeActivity, "a")
	require.NoError(t, err)

	for month := time.January; month <= time.December; month++ {
		at := time.Date(2026, month, 3, 4, 5, 6, 0, time.UTC)
		now = func() time.Time { return at }

		stamp, err := a.StartedAtTime.Stamp()
		require.NoError(t, err)
		require.Equal(t, at.Format(DateTimeLayout), stamp)

		parsed, err := a.StartedAtTime.Time()
		require.NoError(t, err)
		require.Equal(t, month, parsed.Month())
	}

	now = func() time.Time { return time.Date(2026, time.December, 31, 23, 59, 58, 0, time.UTC) }
	stamp, err := a.EndedAtTime.Stamp()
	require.NoError(t, err)
	require.Equal(t, "2026-12-31T23:59:58", stamp)
}

func TestIdentityFields_GuardedInCompliantMode(t *testing.T) {
	cd, err := New[*ComponentDefinition](compliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	require.ErrorIs(t, cd.DisplayID.Set("other"), sbolerr.ErrCompliance)
	require.ErrorIs(t, cd.Identity.Set("http://elsewhere/x"), sbolerr.ErrCompliance)
	require.ErrorIs(t, cd.Version.Set("2"), sbolerr.ErrCompliance)
	require.ErrorIs(t, cd.SetValues(PropPersistentIdentity, []string{"<http://x>"}), sbolerr.ErrCompliance)

	require.NoError(t, cd.Name.Set("free text"))
}

func TestIdentityFields_WritableInNonCompliantMode(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	require.NoError(t, cd.DisplayID.Set("renamed"))
	got, err := cd.DisplayID.Get()
	require.NoError(t, err)
	require.Equal(t, "renamed", got)
}

func TestVersionProperty_IncrementMinorRewritesIdentity(t *testing.T) {
	cd, err := New[*ComponentDefinition](compliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)
	cd.setRaw(PropVersion, literal("1.2.3"))

	require.NoError(t, cd.Version.IncrementMinor())

	v, err := cd.Version.Get()
	require.NoError(t, err)
	require.Equal(t, "1.3.3", v)
	require.Equal(t, "http://examples.com/ComponentDefinition/cd/1.3.3", cd.URI())
}

func TestVersionProperty_BumpOntoTakenIdentityFails(t *testing.T) {
	doc := NewDocument(compliant())
	t.Cleanup(doc.Close)

	first, err := doc.ComponentDefinitions.Create("a")
	require.NoError(t, err)
	require.NoError(t, first.Version.IncrementMinor())
	second, err := doc.ComponentDefinitions.Create("a")
	require.NoError(t, err)
	require.Equal(t, "http://examples.com/ComponentDefinition/a/1.0.0", second.URI())

	require.ErrorIs(t, second.Version.IncrementMinor(), sbolerr.ErrDuplicateURI)

	v, err := second.Version.Get()
	require.NoError(t, err)
	require.Equal(t, "1.0.0", v, "a rejected bump leaves the version alone")
	require.Equal(t, "http://examples.com/ComponentDefinition/a/1.0.0", second.URI())

	got, err := doc.ComponentDefinitions.Get(first.URI())
	require.NoError(t, err)
	require.Same(t, first, got)
	require.Equal(t, 2, doc.Len())
}

func TestVersionProperty_MissingPersistentIdentityLeavesVersion(t *testing.T) {
	cd, err := New[*ComponentDefinition](compliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)
	cd.props[PropPersistentIdentity] = nil

	require.ErrorIs(t, cd.Version.IncrementPatch(), sbolerr.ErrNotFound)
	v, err := cd.Version.Get()
	require.NoError(t, err)
	require.Equal(t, "1.0.0", v)
	require.Equal(t, "http://examples.com/ComponentDefinition/cd/1.0.0", cd.URI())
}

func TestVersionProperty_TooFewComponents(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)
	require.NoError(t, cd.Version.Set("1"))

	require.ErrorIs(t, cd.Version.IncrementMinor(), sbolerr.ErrInvalidArgument)
	require.ErrorIs(t, cd.Version.IncrementPatch(), sbolerr.ErrInvalidArgument)
	require.NoError(t, cd.Version.IncrementMajor())

	major, err := cd.Version.Major()
	require.NoError(t, err)
	require.Equal(t, 2, major)
	require.Equal(t, "http://examples.com/cd", cd.URI(), "non-compliant identity is not derived")
}

func TestVersionProperty_Decrement(t *testing.T) {
	cd, err := New[*ComponentDefinition](compliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	require.NoError(t, cd.Version.DecrementMajor())
	require.Equal(t, "http://examples.com/ComponentDefinition/cd/0.0.0", cd.URI())
	require.ErrorIs(t, cd.Version.DecrementPatch(), sbolerr.ErrInvalidArgument)
}

func TestVersionProperty_SilentModeSuppresses(t *testing.T) {
	cfg := nonCompliant()
	cfg.SilentFailures = true
	cd, err := New[*ComponentDefinition](cfg, TypeComponentDefinition, "cd")
	require.NoError(t, err)
	require.NoError(t, cd.Version.Set("1"))

	require.NoError(t, cd.Version.IncrementPatch())
	v, err := cd.Version.Get()
	require.NoError(t, err)
	require.Equal(t, "1", v)

	_, err = cd.Version.Minor()
	require.Error(t, err, "getters report errors in silent mode")
}

func TestReferencedObject_SetOnLiteralFails(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)
	require.NoError(t, cd.SetValues(PropSequence, []string{`"not a reference"`}))

	err = cd.Sequence.Set("http://examples.com/seq")
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)
}

func TestReferencedObject_SetAddAndAt(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	require.NoError(t, cd.Sequence.Set("http://examples.com/s1"))
	require.NoError(t, cd.Sequence.Set("http://examples.com/s2"))
	require.NoError(t, cd.Sequence.AddReference("http://examples.com/s3"))

	first, err := cd.Sequence.At(0)
	require.NoError(t, err)
	require.Equal(t, "<http://examples.com/s2>", first)
	last, err := cd.Sequence.At(1)
	require.NoError(t, err)
	require.Equal(t, "<http://examples.com/s3>", last)
	_, err = cd.Sequence.At(2)
	require.ErrorIs(t, err, sbolerr.ErrNotFound)
	require.Equal(t, TypeSequence, cd.Sequence.ReferenceType())
}

func TestReferencedObject_SetReference(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "compliant", cfg: compliant(), want: "http://examples.com/Sequence/seq/1.0.0"},
		{name: "homespace", cfg: nonCompliant(), want: "http://examples.com/seq"},
		{name: "bare", cfg: Config{}, want: "seq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd, err := New[*ComponentDefinition](tt.cfg, TypeComponentDefinition, "cd")
			require.NoError(t, err)

			require.NoError(t, cd.Sequence.SetReference("seq"))
			got, err := cd.Sequence.Get()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSetValues_RejectsBareValues(t *testing.T) {
	cd, err := New[*ComponentDefinition](nonCompliant(), TypeComponentDefinition, "cd")
	require.NoError(t, err)

	err = cd.SetValues(PropRoles, []string{"bare"})
	require.True(t, errors.Is(err, sbolerr.ErrInvalidArgument))
}
