package sbol_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/pubsub"
	"github.com/nroehner/libSBOL/internal/testutil"
)

func TestDocument_CreateCompliantTopLevel(t *testing.T) {
	doc := testutil.NewDocument(t)

	cd, err := doc.ComponentDefinitions.Create("gfp")
	require.NoError(t, err)

	require.Equal(t, "http://examples.com/ComponentDefinition/gfp/1.0.0", cd.URI())
	pid, err := cd.PersistentIdentity.Get()
	require.NoError(t, err)
	require.Equal(t, "http://examples.com/ComponentDefinition/gfp", pid)
	v, err := cd.Version.Get()
	require.NoError(t, err)
	require.Equal(t, "1.0.0", v)
	require.Same(t, doc, cd.Document())
	require.True(t, doc.Find(cd.URI()))
	require.Equal(t, 1, doc.Len())
}

func TestDocument_CreateUntypedAndNonCompliant(t *testing.T) {
	untyped := testutil.NewDocument(t, testutil.Untyped())
	cd, err := untyped.ComponentDefinitions.Create("gfp")
	require.NoError(t, err)
	require.Equal(t, "http://examples.com/gfp/1.0.0", cd.URI())

	free := testutil.NewDocument(t, testutil.NonCompliant())
	cd, err = free.ComponentDefinitions.Create("gfp")
	require.NoError(t, err)
	require.Equal(t, "http://examples.com/gfp", cd.URI())

	auto, err := free.ComponentDefinitions.Create("")
	require.NoError(t, err)
	require.Regexp(t, `^http://examples\.com/\d{4}-\d{4}-\d{4}-\d{4}$`, auto.URI())
}

func TestDocument_CreateRequiresDisplayIDWhenCompliant(t *testing.T) {
	doc := testutil.NewDocument(t)

	_, err := doc.ComponentDefinitions.Create("")
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
}

func TestDocument_CreateDuplicate(t *testing.T) {
	doc := testutil.NewDocument(t)

	_, err := doc.Sequences.Create("s")
	require.NoError(t, err)
	_, err = doc.Sequences.Create("s")
	require.ErrorIs(t, err, sbolerr.ErrDuplicateURI)
}

func TestDocument_GetErrors(t *testing.T) {
	doc := testutil.NewDocument(t)
	seq, err := doc.Sequences.Create("s")
	require.NoError(t, err)

	_, err = sbol.Get[*sbol.Sequence](doc, "http://examples.com/missing")
	require.ErrorIs(t, err, sbolerr.ErrNotFound)

	_, err = sbol.Get[*sbol.ComponentDefinition](doc, seq.URI())
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)

	got, err := sbol.Get[*sbol.Sequence](doc, seq.URI())
	require.NoError(t, err)
	require.Same(t, seq, got)

	require.False(t, doc.Find("http://examples.com/missing"))
}

func TestDocument_AddDetached(t *testing.T) {
	doc := testutil.NewDocument(t)
	cd, err := sbol.New[*sbol.ComponentDefinition](doc.Config(), sbol.TypeComponentDefinition, "gfp")
	require.NoError(t, err)
	_, err = cd.Components.Create("inner")
	require.NoError(t, err)

	require.NoError(t, doc.ComponentDefinitions.Add(cd))

	require.Same(t, doc, cd.Document())
	inner, ok := doc.Lookup(cd.URI()[:len(cd.URI())-len("/1.0.0")] + "/inner/1.0.0")
	require.True(t, ok)
	require.Same(t, doc, inner.Base().Document())
	require.Len(t, doc.ComponentDefinitions.All(), 1)

	require.Error(t, doc.Add(cd), "an attached object cannot be added again")
}

func TestDocument_AddToWrongCollection(t *testing.T) {
	doc := testutil.NewDocument(t)
	b, err := sbol.New[*sbol.Build](doc.Config(), sbol.KeyBuild, "b1")
	require.NoError(t, err)

	err = doc.Implementations.Add(b.Implementation)
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)
	require.Zero(t, doc.Implementations.Len())

	require.NoError(t, doc.Builds.Add(b))
	require.Equal(t, 1, doc.Builds.Len())
	require.Zero(t, doc.Implementations.Len())
}

func TestDocument_AliasIsFiledUnderOwnKey(t *testing.T) {
	doc := testutil.NewDocument(t)

	b, err := doc.Builds.Create("b1")
	require.NoError(t, err)
	impl, err := doc.Implementations.Create("i1")
	require.NoError(t, err)

	require.Equal(t, sbol.TypeImplementation, b.Type())
	require.Equal(t, sbol.KeyBuild, b.Key())
	require.Equal(t, "http://examples.com/Build/b1/1.0.0", b.URI())

	require.Equal(t, 1, doc.Builds.Len())
	require.Equal(t, 1, doc.Implementations.Len())
	require.True(t, doc.Builds.Find(b.URI()))
	require.False(t, doc.Implementations.Find(b.URI()))

	_, err = doc.Implementations.Get(b.URI())
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)
	got, err := doc.Builds.Get(b.URI())
	require.NoError(t, err)
	require.Same(t, b, got)
	require.True(t, doc.Implementations.Find(impl.URI()))
}

func TestDocument_RemoveAliasReleasesOnce(t *testing.T) {
	doc := testutil.NewDocument(t)
	test, err := doc.Tests.Create("t1")
	require.NoError(t, err)
	col, err := doc.Collections.Create("c1")
	require.NoError(t, err)

	require.NoError(t, doc.Tests.Remove(test.URI()))

	require.Zero(t, doc.Tests.Len())
	require.Equal(t, 1, doc.Collections.Len())
	require.Nil(t, test.Document())
	require.True(t, doc.Find(col.URI()))
	require.ErrorIs(t, doc.Remove(test.URI()), sbolerr.ErrNotFound)
}

func TestDocument_RemoveCascades(t *testing.T) {
	doc := testutil.NewDocument(t)
	b := testutil.NewBuilder(t, doc).
		WithPart("a", "AAA").
		WithPart("b", "TTT").
		WithComposite("ab", "a", "b")
	ab := b.Definition("ab")
	child := b.Component("ab", "a")

	require.NoError(t, doc.Remove(ab.URI()))

	require.Nil(t, ab.Document())
	require.Nil(t, child.Document())
	_, ok := doc.Lookup(child.URI())
	require.False(t, ok)
	require.Equal(t, 2, ab.Components.Len(), "the removed subtree stays intact")

	// The identities are free again.
	_, err := doc.ComponentDefinitions.Create("ab")
	require.NoError(t, err)
}

func TestDocument_DesignResolvesLazily(t *testing.T) {
	doc := testutil.NewDocument(t)
	structure, err := doc.ComponentDefinitions.Create("structure")
	require.NoError(t, err)
	function, err := doc.ModuleDefinitions.Create("function")
	require.NoError(t, err)
	design, err := doc.Designs.Create("d1")
	require.NoError(t, err)
	require.NoError(t, design.Structure.Set(structure.URI()))
	require.NoError(t, design.Function.Set(function.URI()))

	require.Nil(t, design.StructureDefinition(), "no resolution before Get")

	got, err := doc.Designs.Get(design.URI())
	require.NoError(t, err)
	require.Same(t, structure, got.StructureDefinition())
	require.Same(t, function, got.FunctionDefinition())

	// Re-pointing the reference invalidates the cached resolution.
	other, err := doc.ComponentDefinitions.Create("other")
	require.NoError(t, err)
	require.NoError(t, design.Structure.Set(other.URI()))
	got, err = doc.Designs.Get(design.URI())
	require.NoError(t, err)
	require.Same(t, other, got.StructureDefinition())
}

func TestDocument_DesignDanglingReference(t *testing.T) {
	doc := testutil.NewDocument(t)
	design, err := doc.Designs.Create("d1")
	require.NoError(t, err)
	require.NoError(t, design.Structure.Set("http://examples.com/ComponentDefinition/missing/1.0.0"))

	_, err = doc.Designs.Get(design.URI())
	require.ErrorIs(t, err, sbolerr.ErrNotFound)
}

func TestDocument_AnalysisResolvesAlias(t *testing.T) {
	doc := testutil.NewDocument(t)
	test, err := doc.Tests.Create("plate1")
	require.NoError(t, err)
	model, err := doc.Models.Create("fit")
	require.NoError(t, err)
	analysis, err := doc.Analyses.Create("a1")
	require.NoError(t, err)
	require.NoError(t, analysis.RawData.Set(test.URI()))
	require.NoError(t, analysis.DataModel.Set(model.URI()))

	got, err := doc.Analyses.Get(analysis.URI())
	require.NoError(t, err)
	require.Same(t, test, got.Test())
	require.Same(t, model, got.Model())
}

func TestDocument_VersionBumpRekeys(t *testing.T) {
	doc := testutil.NewDocument(t)
	cd, err := doc.ComponentDefinitions.Create("gfp")
	require.NoError(t, err)
	old := cd.URI()

	require.NoError(t, cd.Version.IncrementMajor())

	require.Equal(t, "http://examples.com/ComponentDefinition/gfp/2.0.0", cd.URI())
	require.False(t, doc.Find(old))
	got, err := doc.ComponentDefinitions.Get(cd.URI())
	require.NoError(t, err)
	require.Same(t, cd, got)
}

func TestDocument_Events(t *testing.T) {
	doc := testutil.NewDocument(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	events := doc.Subscribe(ctx)

	cd, err := doc.ComponentDefinitions.Create("gfp")
	require.NoError(t, err)
	require.NoError(t, cd.Version.IncrementPatch())
	require.NoError(t, doc.Remove(cd.URI()))

	want := []pubsub.EventType{pubsub.CreatedEvent, pubsub.UpdatedEvent, pubsub.DeletedEvent}
	for _, typ := range want {
		ev, ok := pubsub.Next(ctx, events)
		require.True(t, ok)
		require.Equal(t, typ, ev.Type)
	}
}

func TestDocument_SubscribeFiltered(t *testing.T) {
	doc := testutil.NewDocument(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	removed := doc.Subscribe(ctx, pubsub.DeletedEvent)

	seq, err := doc.Sequences.Create("s")
	require.NoError(t, err)
	require.NoError(t, seq.Elements.Set("AAA"))
	require.NoError(t, doc.Remove(seq.URI()))

	ev, ok := pubsub.Next(ctx, removed)
	require.True(t, ok)
	require.Equal(t, pubsub.DeletedEvent, ev.Type)
	require.Equal(t, seq.URI(), ev.Payload)
}

func TestDocument_SilentModeSuppressesMutators(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.Silent())
	_, err := doc.Sequences.Create("s")
	require.NoError(t, err)

	dup, err := doc.Sequences.Create("s")
	require.NoError(t, err)
	require.Nil(t, dup)
	require.NoError(t, doc.Remove("http://examples.com/nothing"))

	_, err = sbol.Get[*sbol.Sequence](doc, "http://examples.com/nothing")
	require.ErrorIs(t, err, sbolerr.ErrNotFound, "getters still fail")
}

func TestDocument_CreateNotTopLevel(t *testing.T) {
	doc := testutil.NewDocument(t)

	_, err := doc.Create(sbol.TypeComponent, "c")
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
	_, err = doc.Create("http://examples.com#Unknown", "u")
	require.ErrorIs(t, err, sbolerr.ErrTypeMismatch)
}

func TestRegistry_ExtensionType(t *testing.T) {
	reg := sbol.DefaultRegistry()
	const plasmid = "http://examples.com#Plasmid"
	require.NoError(t, reg.Register(sbol.TypeDescriptor{
		TypeURI:  sbol.TypeComponentDefinition,
		Key:      plasmid,
		TopLevel: true,
		New:      func(o *sbol.Object) sbol.Entity { return &sbol.Generic{Object: o} },
	}))
	require.Error(t, reg.Register(sbol.TypeDescriptor{TypeURI: plasmid, New: func(o *sbol.Object) sbol.Entity { return o }}),
		"duplicate key")

	doc := sbol.NewDocument(testutil.CompliantConfig(), sbol.WithRegistry(reg))
	t.Cleanup(doc.Close)
	ent, err := doc.Create(plasmid, "pUC19")
	require.NoError(t, err)
	require.Equal(t, "http://examples.com/Plasmid/pUC19/1.0.0", ent.Base().URI())
	require.Equal(t, sbol.TypeComponentDefinition, ent.Base().Type())
	require.Zero(t, doc.ComponentDefinitions.Len())
}

func TestRegistry_AliasNeedsGeneralType(t *testing.T) {
	reg := sbol.NewRegistry()
	err := reg.Register(sbol.TypeDescriptor{
		TypeURI: sbol.TypeImplementation,
		Key:     sbol.KeyBuild,
		New:     func(o *sbol.Object) sbol.Entity { return o },
	})
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
}
