// Package nquads reads and writes document triples as N-Quads.
package nquads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cayleygraph/quad"
	nq "github.com/cayleygraph/quad/nquads"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// Format is the name the serializer registers this codec under.
const Format = "nquads"

const blankPrefix = "_:"

// Codec is the N-Quads file codec.
type Codec struct{}

// NewCodec returns an N-Quads codec.
func NewCodec() *Codec { return &Codec{} }

// Format returns "nquads".
func (Codec) Format() string { return Format }

// Write encodes triples to a new file at path.
func (c Codec) Write(ctx context.Context, path string, triples []sbol.Triple) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(ctx, w, triples); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read decodes the file at path.
func (c Codec) Read(ctx context.Context, path string) ([]sbol.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(ctx, bufio.NewReader(f))
}

// Encode writes one quad per triple in the default graph.
func Encode(ctx context.Context, w io.Writer, triples []sbol.Triple) error {
	qw := nq.NewWriter(w)
	for _, t := range triples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := qw.WriteQuad(toQuad(t)); err != nil {
			return fmt.Errorf("failed to write quad for %s: %w", t.Subject, err)
		}
	}
	return qw.Close()
}

// Decode reads quads until EOF. Graph labels are dropped.
func Decode(ctx context.Context, r io.Reader) ([]sbol.Triple, error) {
	qr := nq.NewReader(r, false)
	var out []sbol.Triple
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := qr.ReadQuad()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read quad: %w", err)
		}
		t, err := fromQuad(q)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	log.Debug(log.CatIO, "nquads decoded", "triples", len(out))
	return out, nil
}

func toQuad(t sbol.Triple) quad.Quad {
	var object quad.Value
	if t.IsReference() {
		object = node(t.Value())
	} else {
		object = quad.String(t.Value())
	}
	return quad.Quad{
		Subject:   node(t.Subject),
		Predicate: quad.IRI(t.Predicate),
		Object:    object,
	}
}

func node(uri string) quad.Value {
	if len(uri) > len(blankPrefix) && uri[:len(blankPrefix)] == blankPrefix {
		return quad.BNode(uri[len(blankPrefix):])
	}
	return quad.IRI(uri)
}

func fromQuad(q quad.Quad) (sbol.Triple, error) {
	subject, ok := nodeURI(q.Subject)
	if !ok {
		return sbol.Triple{}, fmt.Errorf("%w: quad subject %v is not a node", sbolerr.ErrInvalidArgument, q.Subject)
	}
	predicate, ok := q.Predicate.(quad.IRI)
	if !ok {
		return sbol.Triple{}, fmt.Errorf("%w: quad predicate %v is not an IRI", sbolerr.ErrInvalidArgument, q.Predicate)
	}

	var object string
	switch v := q.Object.(type) {
	case quad.IRI, quad.BNode:
		uri, _ := nodeURI(v)
		object = sbol.Reference(uri)
	case quad.String:
		object = sbol.Literal(string(v))
	case quad.TypedString:
		object = sbol.Literal(string(v.Value))
	case quad.LangString:
		object = sbol.Literal(string(v.Value))
	case quad.Time:
		object = sbol.Literal(time.Time(v).UTC().Format(time.RFC3339Nano))
	case nil:
		return sbol.Triple{}, fmt.Errorf("%w: quad for %s has no object", sbolerr.ErrInvalidArgument, subject)
	default:
		// Typed literals the parser converted to native values.
		object = sbol.Literal(fmt.Sprint(v.Native()))
	}
	return sbol.Triple{Subject: subject, Predicate: string(predicate), Object: object}, nil
}

func nodeURI(v quad.Value) (string, bool) {
	switch n := v.(type) {
	case quad.IRI:
		return string(n), true
	case quad.BNode:
		return blankPrefix + string(n), true
	}
	return "", false
}
