// Package sbolio is the file boundary of a document: it picks a codec by format, flattens the
// document to triples on write and rebuilds it from triples on read.
package sbolio

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/config"
	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/infrastructure/jsontriples"
	"github.com/nroehner/libSBOL/internal/infrastructure/nquads"
	"github.com/nroehner/libSBOL/internal/infrastructure/sqlite"
	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/tracing"
)

// Codec moves triples between memory and one file format.
type Codec interface {
	Format() string
	Write(ctx context.Context, path string, triples []sbol.Triple) error
	Read(ctx context.Context, path string) ([]sbol.Triple, error)
}

var extensions = map[string]string{
	".nq":      config.FormatNQuads,
	".nquads":  config.FormatNQuads,
	".json":    config.FormatJSON,
	".jsonld":  config.FormatJSON,
	".db":      config.FormatSQLite,
	".sqlite":  config.FormatSQLite,
	".sqlite3": config.FormatSQLite,
	".xml":     config.FormatRDFXML,
	".rdf":     config.FormatRDFXML,
}

// Serializer dispatches reads and writes to registered codecs.
type Serializer struct {
	codecs map[string]Codec
	tracer trace.Tracer
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithTracer wraps every read and write in a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Serializer) { s.tracer = tracer }
}

// WithCodec registers an extra codec, replacing any codec of the same format.
func WithCodec(c Codec) Option {
	return func(s *Serializer) { s.Register(c) }
}

// NewSerializer returns a serializer with the nquads, json and sqlite codecs registered.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{codecs: make(map[string]Codec)}
	s.Register(nquads.NewCodec())
	s.Register(jsontriples.NewCodec())
	s.Register(sqlite.NewCodec())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds c under its format name.
func (s *Serializer) Register(c Codec) {
	s.codecs[c.Format()] = c
}

// Formats lists the registered format names.
func (s *Serializer) Formats() []string {
	out := make([]string, 0, len(s.codecs))
	for f := range s.codecs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Codec returns the codec for format.
func (s *Serializer) Codec(format string) (Codec, error) {
	c, ok := s.codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", sbolerr.ErrUnsupportedFormat, format, strings.Join(s.Formats(), ", "))
	}
	return c, nil
}

// FormatForPath picks a format from the file extension, falling back to fallback.
func FormatForPath(path, fallback string) string {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return config.NormalizeFileFormat(fallback)
}

// Write serializes doc to path, choosing the format from the extension or the document's
// configured file format.
func (s *Serializer) Write(ctx context.Context, doc *sbol.Document, path string) error {
	return s.WriteAs(ctx, doc, path, FormatForPath(path, doc.Config().FileFormat))
}

// WriteAs serializes doc to path in format.
func (s *Serializer) WriteAs(ctx context.Context, doc *sbol.Document, path, format string) error {
	return tracing.Run(ctx, s.tracer, tracing.SpanWrite, func(ctx context.Context, span trace.Span) error {
		c, err := s.Codec(format)
		if err != nil {
			return err
		}
		triples := doc.Triples()
		span.SetAttributes(attribute.Int(tracing.AttrTriples, len(triples)), attribute.Int(tracing.AttrObjects, doc.Len()))
		if err := c.Write(ctx, path, triples); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Info(log.CatIO, "document written", "path", path, "format", format, "triples", len(triples))
		return nil
	}, attribute.String(tracing.AttrPath, path), attribute.String(tracing.AttrFormat, format))
}

// Read populates doc from path, choosing the format from the extension or the document's
// configured file format.
func (s *Serializer) Read(ctx context.Context, doc *sbol.Document, path string) error {
	return s.ReadAs(ctx, doc, path, FormatForPath(path, doc.Config().FileFormat))
}

// ReadAs populates doc from path in format.
func (s *Serializer) ReadAs(ctx context.Context, doc *sbol.Document, path, format string) error {
	triples, err := s.ReadTriples(ctx, path, format)
	if err != nil {
		return err
	}
	return doc.Load(triples)
}

// ReadTriples decodes path without building a document.
func (s *Serializer) ReadTriples(ctx context.Context, path, format string) ([]sbol.Triple, error) {
	var triples []sbol.Triple
	err := tracing.Run(ctx, s.tracer, tracing.SpanRead, func(ctx context.Context, span trace.Span) error {
		c, err := s.Codec(format)
		if err != nil {
			return err
		}
		triples, err = c.Read(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		span.SetAttributes(attribute.Int(tracing.AttrTriples, len(triples)))
		log.Info(log.CatIO, "document read", "path", path, "format", format, "triples", len(triples))
		return nil
	}, attribute.String(tracing.AttrPath, path), attribute.String(tracing.AttrFormat, format))
	return triples, err
}
