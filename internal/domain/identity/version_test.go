package identity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

func TestVersion_Increment(t *testing.T) {
	tests := []struct {
		in    string
		bump  func(Version) (Version, error)
		want  string
		label string
	}{
		{"1.2.3", Version.IncrementMinor, "1.3.3", "minor"},
		{"1.2.3", Version.IncrementMajor, "2.2.3", "major"},
		{"1.2.3", Version.IncrementPatch, "1.2.4", "patch"},
		{"1", Version.IncrementMajor, "2", "major single"},
		{"1-9_3", Version.IncrementMinor, "1-10_3", "mixed delimiters"},
		{`2\0`, Version.IncrementMinor, `2\1`, "backslash"},
		{"1.0.0-SNAPSHOT", Version.IncrementPatch, "1.0.1-SNAPSHOT", "suffix token kept"},
		{"1.2rc1.0", Version.IncrementMinor, "1.3rc1.0", "numeric prefix with suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := tt.bump(ParseVersion(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestVersion_MissingComponent(t *testing.T) {
	_, err := ParseVersion("1").IncrementMinor()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)

	_, err = ParseVersion("1.2").IncrementPatch()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)

	_, err = ParseVersion("").IncrementMajor()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
}

func TestVersion_NonNumericComponent(t *testing.T) {
	_, err := ParseVersion("a.b").IncrementMinor()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)

	_, err = ParseVersion("x.1").Major()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)
}

func TestVersion_Components(t *testing.T) {
	v := ParseVersion("4.5.6")
	major, err := v.Major()
	require.NoError(t, err)
	minor, err := v.Minor()
	require.NoError(t, err)
	patch, err := v.Patch()
	require.NoError(t, err)
	require.Equal(t, []int{4, 5, 6}, []int{major, minor, patch})
	require.Equal(t, 3, v.Len())
}

func TestVersion_Decrement(t *testing.T) {
	v, err := ParseVersion("2.1.0").DecrementMinor()
	require.NoError(t, err)
	require.Equal(t, "2.0.0", v.String())

	_, err = ParseVersion("2.1.0").DecrementPatch()
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)

	v, err = ParseVersion("2.1.0").DecrementMajor()
	require.NoError(t, err)
	require.Equal(t, "1.1.0", v.String())
}

func TestVersion_BumpDoesNotMutateReceiver(t *testing.T) {
	orig := ParseVersion("1.2.3")
	_, err := orig.IncrementPatch()
	require.NoError(t, err)
	require.Equal(t, "1.2.3", orig.String())
}

// TestVersion_RoundTripAndIncrement is a property-based test: parsing preserves the spelling and an
// increment followed by a decrement of the same component is the identity.
func TestVersion_RoundTripAndIncrement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(t, "components")
		s := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				s += rapid.SampledFrom([]string{".", "-", "_", `\`}).Draw(t, fmt.Sprintf("delim-%d", i))
			}
			s += fmt.Sprint(rapid.IntRange(0, 999).Draw(t, fmt.Sprintf("num-%d", i)))
		}
		v := ParseVersion(s)
		require.Equal(t, s, v.String())

		idx := rapid.IntRange(0, n-1).Draw(t, "idx")
		up, err := v.Bump(idx, 1)
		require.NoError(t, err)
		down, err := up.Bump(idx, -1)
		require.NoError(t, err)
		require.Equal(t, s, down.String())
	})
}
