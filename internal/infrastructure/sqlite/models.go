package sqlite

import (
	"time"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
)

// DocumentModel is a row of the documents table. Times are Unix seconds.
type DocumentModel struct {
	ID           int64
	Name         string
	SourceFormat string
	CreatedAt    int64
	UpdatedAt    int64
}

// DocumentInfo describes one stored document.
type DocumentInfo struct {
	Name         string
	SourceFormat string
	Triples      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *DocumentModel) toInfo(count int) DocumentInfo {
	return DocumentInfo{
		Name:         m.Name,
		SourceFormat: m.SourceFormat,
		Triples:      count,
		CreatedAt:    time.Unix(m.CreatedAt, 0),
		UpdatedAt:    time.Unix(m.UpdatedAt, 0),
	}
}

// TripleModel is a row of the triples table. Position preserves emission order.
type TripleModel struct {
	DocumentID int64
	Position   int
	Subject    string
	Predicate  string
	Object     string
}

func toTripleModel(documentID int64, position int, t sbol.Triple) TripleModel {
	return TripleModel{
		DocumentID: documentID,
		Position:   position,
		Subject:    t.Subject,
		Predicate:  t.Predicate,
		Object:     t.Object,
	}
}

func (m TripleModel) toDomain() sbol.Triple {
	return sbol.Triple{Subject: m.Subject, Predicate: m.Predicate, Object: m.Object}
}
