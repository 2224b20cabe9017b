package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nroehner/libSBOL/internal/infrastructure/sqlite"
	"github.com/nroehner/libSBOL/internal/testutil"
)

func TestFormatOrder(t *testing.T) {
	doc := testutil.NewDocument(t)
	b := testutil.NewBuilder(t, doc).
		WithPart("a", "AAA").
		WithPart("b", "TTT").
		WithComposite("ab", "a", "b")
	ab := b.Definition("ab")
	order, err := ab.InSequentialOrder()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatOrder(FromOrder(ab, order)))

	var got OrderDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, ab.URI(), got.Definition)
	require.Len(t, got.Components, 2)
	require.Equal(t, ComponentDTO{
		Position:   1,
		URI:        b.Component("ab", "a").URI(),
		DisplayID:  "a",
		Definition: b.Definition("a").URI(),
	}, got.Components[0])
	require.Equal(t, 2, got.Components[1].Position)
	require.Equal(t, "b", got.Components[1].DisplayID)
}

func TestFormatStoredDocuments(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	dtos := FromStoredDocuments([]sqlite.DocumentInfo{
		{Name: "cassette", SourceFormat: "nquads", Triples: 12, CreatedAt: ts, UpdatedAt: ts},
	})

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatStoredDocuments(dtos))
	require.Contains(t, buf.String(), `"name": "cassette"`)
	require.Contains(t, buf.String(), `"triples": 12`)
	require.Contains(t, buf.String(), `"created_at": "2023-11-14T22:13:20Z"`)
}
