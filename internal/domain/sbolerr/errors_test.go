package sbolerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCycleError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("ordering: %w", &CycleError{Scope: "cd", Path: []string{"a", "b", "a"}})

	require.ErrorIs(t, err, ErrCycle)
	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
	require.Equal(t, []string{"a", "b", "a"}, cycle.Path)
	require.Contains(t, err.Error(), "a -> b -> a")
}

func TestAmbiguousConstraintError_UnwrapsToSentinel(t *testing.T) {
	err := &AmbiguousConstraintError{Component: "c", Direction: Downstream, Candidates: []string{"x", "y"}}

	require.ErrorIs(t, err, ErrAmbiguousConstraint)
	require.Contains(t, err.Error(), "2 downstream neighbors")
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{nil, ""},
		{fmt.Errorf("%w: x", ErrCompliance), "compliance"},
		{fmt.Errorf("%w: x", ErrNotFound), "not-found"},
		{fmt.Errorf("%w: x", ErrTypeMismatch), "type-mismatch"},
		{fmt.Errorf("%w: x", ErrDuplicateURI), "duplicate-uri"},
		{fmt.Errorf("%w: x", ErrInvalidArgument), "invalid-argument"},
		{ErrOrphanObject, "orphan-object"},
		{ErrMissingDocument, "missing-document"},
		{&CycleError{}, "cycle"},
		{&AmbiguousConstraintError{}, "ambiguous-constraint"},
		{ErrUnsupportedFormat, "unsupported-format"},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.code, Code(tt.err))
	}
}
