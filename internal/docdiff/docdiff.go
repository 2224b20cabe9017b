// Package docdiff compares two documents line by line over their canonical N-Quads form.
package docdiff

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/infrastructure/nquads"
)

// Op classifies a line of the diff.
type Op int

const (
	// Unchanged lines appear in both documents.
	Unchanged Op = iota
	// Added lines appear only in the second document.
	Added
	// Removed lines appear only in the first document.
	Removed
)

// Change is one line of the diff.
type Change struct {
	Op   Op
	Line string
}

// Result is the full line diff.
type Result struct {
	Changes []Change
}

// Equal reports whether the documents have the same triples.
func (r Result) Equal() bool {
	for _, c := range r.Changes {
		if c.Op != Unchanged {
			return false
		}
	}
	return true
}

// Added returns the lines only in the second document.
func (r Result) Added() []string { return r.lines(Added) }

// Removed returns the lines only in the first document.
func (r Result) Removed() []string { return r.lines(Removed) }

func (r Result) lines(op Op) []string {
	var out []string
	for _, c := range r.Changes {
		if c.Op == op {
			out = append(out, c.Line)
		}
	}
	return out
}

// String renders changed lines prefixed with "+ " or "- ".
func (r Result) String() string {
	var b strings.Builder
	for _, c := range r.Changes {
		switch c.Op {
		case Added:
			b.WriteString("+ ")
		case Removed:
			b.WriteString("- ")
		default:
			continue
		}
		b.WriteString(c.Line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Documents diffs a against b.
func Documents(ctx context.Context, a, b *sbol.Document) (Result, error) {
	return Triples(ctx, a.Triples(), b.Triples())
}

// Triples diffs two triple sets. Order within each set is ignored.
func Triples(ctx context.Context, a, b []sbol.Triple) (Result, error) {
	left, err := canonical(ctx, a)
	if err != nil {
		return Result{}, err
	}
	right, err := canonical(ctx, b)
	if err != nil {
		return Result{}, err
	}

	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var res Result
	for _, d := range diffs {
		op := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Added
		case diffmatchpatch.DiffDelete:
			op = Removed
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			res.Changes = append(res.Changes, Change{Op: op, Line: strings.TrimSuffix(line, "\n")})
		}
	}
	return res, nil
}

// canonical encodes triples as sorted N-Quads lines.
func canonical(ctx context.Context, triples []sbol.Triple) (string, error) {
	var buf bytes.Buffer
	if err := nquads.Encode(ctx, &buf, triples); err != nil {
		return "", err
	}
	lines := strings.SplitAfter(buf.String(), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	sort.Strings(lines)
	return strings.Join(lines, ""), nil
}
