// Package jsontriples reads and writes document triples as RDF/JSON:
// {subject: {predicate: [{"type": "uri" | "bnode" | "literal", "value": ...}]}}.
package jsontriples

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

// Format is the name the serializer registers this codec under.
const Format = "json"

const (
	typeURI     = "uri"
	typeBNode   = "bnode"
	typeLiteral = "literal"
)

// Object is one value in a predicate's list.
type Object struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Graph is the decoded RDF/JSON document.
type Graph map[string]map[string][]Object

// Codec is the RDF/JSON file codec.
type Codec struct {
	Indent bool
}

// NewCodec returns an indenting RDF/JSON codec.
func NewCodec() *Codec { return &Codec{Indent: true} }

// Format returns "json".
func (*Codec) Format() string { return Format }

// Write encodes triples to a new file at path.
func (c *Codec) Write(ctx context.Context, path string, triples []sbol.Triple) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.Encode(f, triples); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read decodes the file at path.
func (c *Codec) Read(ctx context.Context, path string) ([]sbol.Triple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Encode writes triples as one RDF/JSON object.
func (c *Codec) Encode(w io.Writer, triples []sbol.Triple) error {
	enc := json.NewEncoder(w)
	if c.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ToGraph(triples)); err != nil {
		return fmt.Errorf("failed to encode rdf/json: %w", err)
	}
	return nil
}

// Decode reads one RDF/JSON object.
func Decode(r io.Reader) ([]sbol.Triple, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: malformed rdf/json: %v", sbolerr.ErrInvalidArgument, err)
	}
	return g.Triples()
}

// ToGraph groups triples by subject and predicate, keeping value order.
func ToGraph(triples []sbol.Triple) Graph {
	g := Graph{}
	for _, t := range triples {
		preds, ok := g[t.Subject]
		if !ok {
			preds = map[string][]Object{}
			g[t.Subject] = preds
		}
		preds[t.Predicate] = append(preds[t.Predicate], toObject(t))
	}
	return g
}

// Triples flattens the graph. Subjects and predicates are sorted since JSON objects carry no order;
// values keep their list order.
func (g Graph) Triples() ([]sbol.Triple, error) {
	var out []sbol.Triple
	for _, subject := range sortedKeys(g) {
		preds := g[subject]
		for _, predicate := range sortedKeys(preds) {
			for _, o := range preds[predicate] {
				object, err := o.lexical()
				if err != nil {
					return nil, fmt.Errorf("%s %s: %w", subject, predicate, err)
				}
				out = append(out, sbol.Triple{Subject: subject, Predicate: predicate, Object: object})
			}
		}
	}
	return out, nil
}

func toObject(t sbol.Triple) Object {
	switch {
	case !t.IsReference():
		return Object{Type: typeLiteral, Value: t.Value()}
	case strings.HasPrefix(t.Value(), "_:"):
		return Object{Type: typeBNode, Value: t.Value()}
	default:
		return Object{Type: typeURI, Value: t.Value()}
	}
}

func (o Object) lexical() (string, error) {
	switch o.Type {
	case typeURI, typeBNode:
		return sbol.Reference(o.Value), nil
	case typeLiteral:
		return sbol.Literal(o.Value), nil
	}
	return "", fmt.Errorf("%w: rdf/json value type %q", sbolerr.ErrInvalidArgument, o.Type)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
