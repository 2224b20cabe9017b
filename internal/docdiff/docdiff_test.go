package docdiff

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/testutil"
)

func TestDocuments_Identical(t *testing.T) {
	a := testutil.NewDocument(t)
	testutil.NewBuilder(t, a).WithExpressionCassette()
	b := testutil.NewDocument(t)
	require.NoError(t, b.Load(a.Triples()))

	res, err := Documents(context.Background(), a, b)
	require.NoError(t, err)
	require.True(t, res.Equal())
	require.Empty(t, res.String())
}

func TestDocuments_OrderIgnored(t *testing.T) {
	triples := []sbol.Triple{
		{Subject: "http://x/a", Predicate: sbol.RDFType, Object: sbol.Reference(sbol.TypeSequence)},
		{Subject: "http://x/b", Predicate: sbol.RDFType, Object: sbol.Reference(sbol.TypeSequence)},
	}
	reversed := []sbol.Triple{triples[1], triples[0]}

	res, err := Triples(context.Background(), triples, reversed)
	require.NoError(t, err)
	require.True(t, res.Equal())
}

func TestDocuments_ReportsChangedValue(t *testing.T) {
	a := testutil.NewDocument(t)
	seq, err := a.Sequences.Create("s")
	require.NoError(t, err)
	require.NoError(t, seq.Elements.Set("AAA"))

	b := testutil.NewDocument(t)
	require.NoError(t, b.Load(a.Triples()))
	loaded, err := b.Sequences.Get(seq.URI())
	require.NoError(t, err)
	require.NoError(t, loaded.Elements.Set("TTT"))
	_, err = b.Sequences.Create("extra")
	require.NoError(t, err)

	res, err := Documents(context.Background(), a, b)
	require.NoError(t, err)
	require.False(t, res.Equal())

	removed := res.Removed()
	require.Len(t, removed, 1)
	require.Contains(t, removed[0], `"AAA"`)

	added := res.Added()
	require.NotEmpty(t, added)
	require.True(t, containsLine(added, `"TTT"`))
	require.True(t, containsLine(added, "/extra/"))
	require.Contains(t, res.String(), `- `+removed[0])
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
