package jsontriples

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/testutil"
)

func TestEncode_GroupsBySubject(t *testing.T) {
	triples := []sbol.Triple{
		{Subject: "http://x/s", Predicate: sbol.RDFType, Object: sbol.Reference(sbol.TypeSequence)},
		{Subject: "http://x/s", Predicate: sbol.PropElements, Object: sbol.Literal("AAA")},
		{Subject: "http://x/s", Predicate: "http://x/p", Object: sbol.Reference("_:b0")},
	}
	var buf bytes.Buffer
	require.NoError(t, (&Codec{}).Encode(&buf, triples))

	var g Graph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &g))
	require.Equal(t, []Object{{Type: "uri", Value: sbol.TypeSequence}}, g["http://x/s"][sbol.RDFType])
	require.Equal(t, []Object{{Type: "literal", Value: "AAA"}}, g["http://x/s"][sbol.PropElements])
	require.Equal(t, []Object{{Type: "bnode", Value: "_:b0"}}, g["http://x/s"]["http://x/p"])
}

func TestDecode_SortsSubjectsKeepsValueOrder(t *testing.T) {
	input := `{
  "http://x/b": {"http://x/p": [{"type": "literal", "value": "2"}, {"type": "literal", "value": "1"}]},
  "http://x/a": {"http://x/q": [{"type": "uri", "value": "http://x/b"}]}
}`
	triples, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []sbol.Triple{
		{Subject: "http://x/a", Predicate: "http://x/q", Object: sbol.Reference("http://x/b")},
		{Subject: "http://x/b", Predicate: "http://x/p", Object: sbol.Literal("2")},
		{Subject: "http://x/b", Predicate: "http://x/p", Object: sbol.Literal("1")},
	}, triples)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed", input: `{"http://x/a": [`},
		{name: "unknown value type", input: `{"http://x/a": {"http://x/p": [{"type": "blob", "value": "x"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
		})
	}
}

func TestCodec_FileRoundTrip(t *testing.T) {
	doc := testutil.NewDocument(t)
	testutil.NewBuilder(t, doc).WithTwoLevelHierarchy()
	path := filepath.Join(t.TempDir(), "design.json")
	ctx := context.Background()

	codec := NewCodec()
	require.Equal(t, "json", codec.Format())
	require.NoError(t, codec.Write(ctx, path, doc.Triples()))

	triples, err := codec.Read(ctx, path)
	require.NoError(t, err)
	require.ElementsMatch(t, doc.Triples(), triples)

	loaded := testutil.NewDocument(t)
	require.NoError(t, loaded.Load(triples))
	require.Equal(t, doc.Len(), loaded.Len())
	require.ElementsMatch(t, doc.Triples(), loaded.Triples())

	abc, err := loaded.ComponentDefinitions.Get(testutil.Homespace + "/ComponentDefinition/abc/1.0.0")
	require.NoError(t, err)
	seq, err := abc.UpdateSequence("")
	require.NoError(t, err)
	require.Equal(t, "AAATTTGGG", seq)
}
