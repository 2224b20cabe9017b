// Package testutil builds documents and part hierarchies for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
)

// NewDocument returns a document configured by opts and closed when the test ends.
func NewDocument(t *testing.T, opts ...ConfigOption) *sbol.Document {
	t.Helper()
	doc := sbol.NewDocument(Config(opts...))
	t.Cleanup(doc.Close)
	return doc
}

// Builder adds parts and composites to a document by display id.
type Builder struct {
	t    *testing.T
	doc  *sbol.Document
	defs map[string]*sbol.ComponentDefinition
}

// NewBuilder creates a builder for doc.
func NewBuilder(t *testing.T, doc *sbol.Document) *Builder {
	t.Helper()
	return &Builder{t: t, doc: doc, defs: make(map[string]*sbol.ComponentDefinition)}
}

// Document returns the document being built.
func (b *Builder) Document() *sbol.Document { return b.doc }

// WithPart adds a leaf definition id whose Sequence id_seq holds elements.
func (b *Builder) WithPart(id, elements string) *Builder {
	b.t.Helper()
	seq, err := b.doc.Sequences.Create(id + "_seq")
	require.NoError(b.t, err)
	require.NoError(b.t, seq.Elements.Set(elements))

	cd, err := b.doc.ComponentDefinitions.Create(id)
	require.NoError(b.t, err)
	require.NoError(b.t, cd.Sequence.Set(seq.URI()))
	b.defs[id] = cd
	return b
}

// WithComposite adds definition id assembled from the named parts, in order.
func (b *Builder) WithComposite(id string, parts ...string) *Builder {
	b.t.Helper()
	cd, err := b.doc.ComponentDefinitions.Create(id)
	require.NoError(b.t, err)

	defs := make([]*sbol.ComponentDefinition, 0, len(parts))
	for _, p := range parts {
		defs = append(defs, b.Definition(p))
	}
	require.NoError(b.t, cd.Assemble(defs))
	b.defs[id] = cd
	return b
}

// WithChildren adds definition id with one component per named part and no constraints. The
// components are named after the parts.
func (b *Builder) WithChildren(id string, parts ...string) *Builder {
	b.t.Helper()
	cd, err := b.doc.ComponentDefinitions.Create(id)
	require.NoError(b.t, err)
	for _, p := range parts {
		c, err := cd.Components.Create(p)
		require.NoError(b.t, err)
		require.NoError(b.t, c.Definition.Set(b.Definition(p).URI()))
	}
	b.defs[id] = cd
	return b
}

// WithPrecedes constrains component subject to precede component object inside parent.
func (b *Builder) WithPrecedes(parent, subject, object string) *Builder {
	b.t.Helper()
	cd := b.Definition(parent)
	sc, err := cd.SequenceConstraints.Create(subject + "_" + object)
	require.NoError(b.t, err)
	require.NoError(b.t, sc.SubjectRef.Set(b.Component(parent, subject).URI()))
	require.NoError(b.t, sc.ObjectRef.Set(b.Component(parent, object).URI()))
	return b
}

// Definition returns a definition added by the builder.
func (b *Builder) Definition(id string) *sbol.ComponentDefinition {
	b.t.Helper()
	cd, ok := b.defs[id]
	require.True(b.t, ok, "no definition %q in builder", id)
	return cd
}

// Component returns the component with display id id inside parent.
func (b *Builder) Component(parent, id string) *sbol.Component {
	b.t.Helper()
	for _, c := range b.Definition(parent).Components.All() {
		if displayID, err := c.DisplayID.Get(); err == nil && displayID == id {
			return c
		}
	}
	require.Failf(b.t, "missing component", "%s has no component %q", parent, id)
	return nil
}

// DisplayIDs maps components to their display ids.
func DisplayIDs(t *testing.T, components []*sbol.Component) []string {
	t.Helper()
	out := make([]string, 0, len(components))
	for _, c := range components {
		id, err := c.DisplayID.Get()
		require.NoError(t, err)
		out = append(out, id)
	}
	return out
}
