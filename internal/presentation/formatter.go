package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatOrder formats an ordered definition as JSON
func (f *Formatter) FormatOrder(order OrderDTO) error {
	return f.encode(order)
}

// FormatStoredDocuments formats store metadata as JSON
func (f *Formatter) FormatStoredDocuments(docs []StoredDocumentDTO) error {
	return f.encode(docs)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
