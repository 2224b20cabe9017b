package sbol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

// precedesEdges returns the (subject, object) pairs of every precedes constraint, in
// constraint order.
func (cd *ComponentDefinition) precedesEdges() [][2]string {
	constraints := cd.SequenceConstraints.All()
	edges := make([][2]string, 0, len(constraints))
	for _, sc := range constraints {
		if subject, object, ok := sc.precedes(); ok {
			edges = append(edges, [2]string{subject, object})
		}
	}
	return edges
}

func (cd *ComponentDefinition) requireDocument() error {
	if cd.doc == nil {
		return fmt.Errorf("%w: %s", sbolerr.ErrMissingDocument, cd.Object)
	}
	return nil
}

// neighbors scans the precedes constraints for components adjacent to c. upstream selects
// constraints whose object is c and returns their subjects; otherwise the reverse.
func (cd *ComponentDefinition) neighbors(c *Component, upstream bool) ([]string, error) {
	if err := cd.requireDocument(); err != nil {
		return nil, err
	}
	uri := c.URI()
	var out []string
	for _, e := range cd.precedesEdges() {
		switch {
		case upstream && e[1] == uri:
			out = append(out, e[0])
		case !upstream && e[0] == uri:
			out = append(out, e[1])
		}
	}
	return out, nil
}

// HasUpstream reports whether some precedes constraint has c as its object.
func (cd *ComponentDefinition) HasUpstream(c *Component) (bool, error) {
	n, err := cd.neighbors(c, true)
	return len(n) > 0, err
}

// HasDownstream reports whether some precedes constraint has c as its subject.
func (cd *ComponentDefinition) HasDownstream(c *Component) (bool, error) {
	n, err := cd.neighbors(c, false)
	return len(n) > 0, err
}

// Upstream returns the component immediately before c.
func (cd *ComponentDefinition) Upstream(c *Component) (*Component, error) {
	return cd.neighbor(c, true)
}

// Downstream returns the component immediately after c.
func (cd *ComponentDefinition) Downstream(c *Component) (*Component, error) {
	return cd.neighbor(c, false)
}

func (cd *ComponentDefinition) neighbor(c *Component, upstream bool) (*Component, error) {
	candidates, err := cd.neighbors(c, upstream)
	if err != nil {
		return nil, err
	}
	direction := sbolerr.Downstream
	if upstream {
		direction = sbolerr.Upstream
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s has no %s component", sbolerr.ErrNotFound, c.Object, direction)
	case 1:
		return cd.Components.Get(candidates[0])
	default:
		return nil, &sbolerr.AmbiguousConstraintError{Component: c.URI(), Direction: direction, Candidates: candidates}
	}
}

// FirstComponent walks upstream from the first child until no neighbor remains.
func (cd *ComponentDefinition) FirstComponent() (*Component, error) {
	return cd.walkToEnd(true)
}

// LastComponent walks downstream from the first child until no neighbor remains.
func (cd *ComponentDefinition) LastComponent() (*Component, error) {
	return cd.walkToEnd(false)
}

func (cd *ComponentDefinition) walkToEnd(upstream bool) (*Component, error) {
	if err := cd.requireDocument(); err != nil {
		return nil, err
	}
	current, err := cd.Components.At(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no components", sbolerr.ErrNotFound, cd.Object)
	}

	visited := map[string]bool{current.URI(): true}
	path := []string{current.URI()}
	for {
		candidates, err := cd.neighbors(current, upstream)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return current, nil
		}
		next, err := cd.neighbor(current, upstream)
		if err != nil {
			return nil, err
		}
		path = append(path, next.URI())
		if visited[next.URI()] {
			return nil, &sbolerr.CycleError{Scope: cd.URI(), Path: path}
		}
		visited[next.URI()] = true
		current = next
	}
}

// InSequentialOrder returns the components from the first to the last along the precedes
// constraints.
func (cd *ComponentDefinition) InSequentialOrder() ([]*Component, error) {
	first, err := cd.FirstComponent()
	if err != nil {
		return nil, err
	}

	ordered := []*Component{first}
	visited := map[string]bool{first.URI(): true}
	current := first
	for {
		more, err := cd.HasDownstream(current)
		if err != nil {
			return nil, err
		}
		if !more {
			return ordered, nil
		}
		next, err := cd.Downstream(current)
		if err != nil {
			return nil, err
		}
		if visited[next.URI()] {
			path := make([]string, 0, len(ordered)+1)
			for _, c := range ordered {
				path = append(path, c.URI())
			}
			return nil, &sbolerr.CycleError{Scope: cd.URI(), Path: append(path, next.URI())}
		}
		visited[next.URI()] = true
		ordered = append(ordered, next)
		current = next
	}
}

// seqFrame is one definition being composed on the UpdateSequence stack.
type seqFrame struct {
	def   *ComponentDefinition
	parts []*ComponentDefinition
	next  int
	buf   strings.Builder
}

// UpdateSequence composes the primary sequence of the hierarchy rooted at cd: prefix followed by
// the sequence of each component's definition in sequential order, recursively. A definition
// without components contributes the elements of its own Sequence; for such a root the prefix is
// not applied.
func (cd *ComponentDefinition) UpdateSequence(prefix string) (string, error) {
	if err := cd.requireDocument(); err != nil {
		return "", err
	}
	if cd.Components.Len() == 0 {
		return cd.leafElements()
	}

	root, err := cd.frame()
	if err != nil {
		return "", err
	}
	stack := []*seqFrame{root}
	onStack := map[string]bool{cd.URI(): true}

	for {
		top := stack[len(stack)-1]
		if top.next == len(top.parts) {
			stack = stack[:len(stack)-1]
			delete(onStack, top.def.URI())
			if len(stack) == 0 {
				composed := prefix + top.buf.String()
				log.Debug(log.CatAssembly, "sequence composed", "definition", cd.URI(), "length", len(composed))
				return composed, nil
			}
			stack[len(stack)-1].buf.WriteString(top.buf.String())
			continue
		}

		part := top.parts[top.next]
		top.next++
		if onStack[part.URI()] {
			path := make([]string, 0, len(stack)+1)
			for _, f := range stack {
				path = append(path, f.def.URI())
			}
			return "", &sbolerr.CycleError{Scope: cd.URI(), Path: append(path, part.URI())}
		}
		if part.Components.Len() == 0 {
			elements, err := part.leafElements()
			if err != nil {
				return "", err
			}
			top.buf.WriteString(elements)
			continue
		}
		f, err := part.frame()
		if err != nil {
			return "", err
		}
		stack = append(stack, f)
		onStack[part.URI()] = true
	}
}

// frame resolves the ordered child definitions of a composite.
func (cd *ComponentDefinition) frame() (*seqFrame, error) {
	ordered, err := cd.InSequentialOrder()
	if err != nil {
		return nil, err
	}
	f := &seqFrame{def: cd, parts: make([]*ComponentDefinition, 0, len(ordered))}
	for _, c := range ordered {
		uri, err := c.Definition.Get()
		if err != nil {
			return nil, fmt.Errorf("%w: component %s has no definition", sbolerr.ErrNotFound, c.Object)
		}
		def, err := Get[*ComponentDefinition](cd.doc, uri)
		if err != nil {
			return nil, err
		}
		f.parts = append(f.parts, def)
	}
	return f, nil
}

func (cd *ComponentDefinition) leafElements() (string, error) {
	if err := cd.requireDocument(); err != nil {
		return "", err
	}
	uri, err := cd.Sequence.Get()
	if err != nil {
		return "", fmt.Errorf("%w: %s has neither components nor a sequence", sbolerr.ErrNotFound, cd.Object)
	}
	seq, err := Get[*Sequence](cd.doc, uri)
	if err != nil {
		return "", err
	}
	return seq.Elements.Get()
}

// Assemble instantiates one Component per definition, named by the definition's display id,
// and chains them with precedes constraints named constraint1..constraintN-1. It needs at least
// two definitions and compliant URIs. A failure part way leaves the components created so far.
func (cd *ComponentDefinition) Assemble(defs []*ComponentDefinition) error {
	return cd.env.fail("Assemble", cd.assemble(defs))
}

func (cd *ComponentDefinition) assemble(defs []*ComponentDefinition) error {
	if len(defs) < 2 {
		return fmt.Errorf("%w: assembly needs at least 2 definitions, got %d", sbolerr.ErrInvalidArgument, len(defs))
	}
	if !cd.env.ids.Compliant() {
		return fmt.Errorf("%w: assembly requires compliant URIs", sbolerr.ErrCompliance)
	}

	instances := make([]*Component, 0, len(defs))
	for _, def := range defs {
		displayID, err := def.DisplayID.Get()
		if err != nil {
			return fmt.Errorf("%w: %s has no display id", sbolerr.ErrInvalidArgument, def.Object)
		}
		c, err := cd.Components.Create(displayID)
		if err != nil || c == nil {
			return err
		}
		if err := c.Definition.Set(def.URI()); err != nil {
			return err
		}
		instances = append(instances, c)
	}

	for i := 1; i < len(instances); i++ {
		sc, err := cd.SequenceConstraints.Create("constraint" + strconv.Itoa(i))
		if err != nil || sc == nil {
			return err
		}
		if err := sc.SubjectRef.Set(instances[i-1].URI()); err != nil {
			return err
		}
		if err := sc.ObjectRef.Set(instances[i].URI()); err != nil {
			return err
		}
		if err := sc.Restriction.Set(RestrictionPrecedes); err != nil {
			return err
		}
	}

	log.Info(log.CatAssembly, "assembled", "definition", cd.URI(), "parts", len(defs))
	return nil
}
