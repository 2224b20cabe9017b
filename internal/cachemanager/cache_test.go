package cachemanager

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const gfp = "http://examples.org/ComponentDefinition/gfp/1"

func TestCache_SetGet(t *testing.T) {
	c := New[[]string]("test", NoExpiration)
	c.Set(gfp, []string{"a", "b"})

	got, ok := c.Get(gfp)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, c.Len())
}

func TestCache_Miss(t *testing.T) {
	c := New[string]("test", NoExpiration)
	got, ok := c.Get(gfp)
	require.False(t, ok)
	require.Empty(t, got)
}

func TestCache_WrongTypeIsDropped(t *testing.T) {
	c := New[string]("test", NoExpiration)
	c.cache.Set(gfp, 123, NoExpiration)

	_, ok := c.Get(gfp)
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	c := New[string]("test", 20*time.Millisecond)
	c.Set(gfp, "gfp")
	require.Eventually(t, func() bool {
		_, ok := c.Get(gfp)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCache_InvalidateAndFlush(t *testing.T) {
	c := New[string]("test", NoExpiration)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	c.Invalidate("a", "b", "missing")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Flush()
	require.Zero(t, c.Len())
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(uri string) (string, bool) {
	args := m.Called(uri)
	return args.String(0), args.Bool(1)
}

func (m *mockStore) Set(uri, value string) { m.Called(uri, value) }

func (m *mockStore) Invalidate(uris ...string) { m.Called(uris) }

func (m *mockStore) Flush() { m.Called() }

func TestResolver_ComputesOnceThenHits(t *testing.T) {
	calls := 0
	r := NewResolver[string, int](New[string]("test", NoExpiration), func(n int) (string, error) {
		calls++
		return "resolved", nil
	})

	for range 3 {
		v, err := r.Resolve(gfp, 1)
		require.NoError(t, err)
		require.Equal(t, "resolved", v)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, Stats{Hits: 2, Misses: 1}, r.Stats())
}

func TestResolver_FailureIsNotCached(t *testing.T) {
	store := &mockStore{}
	store.Test(t)
	defer store.AssertExpectations(t)
	store.On("Get", gfp).Return("", false).Twice()

	boom := errors.New("dangling")
	r := NewResolver[string, int](store, func(int) (string, error) { return "", boom })

	_, err := r.Resolve(gfp, 0)
	require.ErrorIs(t, err, boom)
	_, err = r.Resolve(gfp, 0)
	require.ErrorIs(t, err, boom)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestResolver_UsesStoreHit(t *testing.T) {
	store := &mockStore{}
	store.Test(t)
	defer store.AssertExpectations(t)
	store.On("Get", gfp).Return("cached", true).Once()

	r := NewResolver[string, int](store, func(int) (string, error) {
		t.Fatal("resolver function called on a hit")
		return "", nil
	})
	v, err := r.Resolve(gfp, 0)
	require.NoError(t, err)
	require.Equal(t, "cached", v)
}
