package presentation

import (
	"time"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/infrastructure/sqlite"
)

// ComponentDTO represents one component of an ordered definition
type ComponentDTO struct {
	Position   int    `json:"position"`
	URI        string `json:"uri"`
	DisplayID  string `json:"display_id,omitempty"`
	Definition string `json:"definition,omitempty"`
}

// OrderDTO is a definition's children in constraint order
type OrderDTO struct {
	Definition string         `json:"definition"`
	Components []ComponentDTO `json:"components"`
}

// StoredDocumentDTO represents a document held in the triple store
type StoredDocumentDTO struct {
	Name         string    `json:"name"`
	SourceFormat string    `json:"source_format,omitempty"`
	Triples      int       `json:"triples"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromOrder converts ordered components to a DTO. Unset properties are left empty.
func FromOrder(def *sbol.ComponentDefinition, components []*sbol.Component) OrderDTO {
	dto := OrderDTO{Definition: def.URI(), Components: make([]ComponentDTO, len(components))}
	for i, c := range components {
		displayID, _ := c.DisplayID.Get()
		definition, _ := c.Definition.Get()
		dto.Components[i] = ComponentDTO{
			Position:   i + 1,
			URI:        c.URI(),
			DisplayID:  displayID,
			Definition: definition,
		}
	}
	return dto
}

// FromStoredDocuments converts store metadata to DTOs.
func FromStoredDocuments(infos []sqlite.DocumentInfo) []StoredDocumentDTO {
	dtos := make([]StoredDocumentDTO, len(infos))
	for i, info := range infos {
		dtos[i] = StoredDocumentDTO{
			Name:         info.Name,
			SourceFormat: info.SourceFormat,
			Triples:      info.Triples,
			CreatedAt:    info.CreatedAt.UTC(),
			UpdatedAt:    info.UpdatedAt.UTC(),
		}
	}
	return dtos
}
