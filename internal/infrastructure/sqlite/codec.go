package sqlite

import (
	"context"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
)

// Format is the name the serializer registers the store under.
const Format = "sqlite"

// DefaultDocument is the name a file codec stores its single document under.
const DefaultDocument = "default"

// Codec reads and writes a whole store file as one document.
type Codec struct {
	name string
}

// NewCodec returns a codec that keeps its triples under DefaultDocument.
func NewCodec() *Codec {
	return &Codec{name: DefaultDocument}
}

// Format returns "sqlite".
func (c *Codec) Format() string { return Format }

// Write saves triples into the store at path, replacing what was there.
func (c *Codec) Write(ctx context.Context, path string, triples []sbol.Triple) error {
	db, err := NewDB(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.Triples().Save(ctx, c.name, Format, triples)
}

// Read loads the triples held in the store at path.
func (c *Codec) Read(ctx context.Context, path string) ([]sbol.Triple, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	return db.Triples().Load(ctx, c.name)
}
