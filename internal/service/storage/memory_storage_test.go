package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorageBasics(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	s.Set("b", 2)

	v, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = s.Get("missing")
	require.False(t, ok)

	require.Equal(t, 2, s.Count())
	require.Equal(t, map[string]int{"a": 1, "b": 2}, s.GetAll())
	require.ElementsMatch(t, []int{1, 2}, s.GetAllValues())

	require.True(t, s.Delete("a"))
	require.False(t, s.Delete("a"))
	require.Equal(t, 1, s.Count())
}

func TestMemoryStorageTouch(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	require.False(t, s.Touch("missing"))

	s.Set("a", 1)
	require.True(t, s.Touch("a"))
}

func TestMemoryStorageSweepOlderThan(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("old", 1)
	time.Sleep(20 * time.Millisecond)
	s.Set("fresh", 2)

	removed := s.SweepOlderThan(10 * time.Millisecond)
	require.Equal(t, []string{"old"}, removed)
	require.Equal(t, 1, s.Count())

	_, ok := s.Get("fresh")
	require.True(t, ok)
}

func TestMemoryStorageTouchPreventsSweep(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	s.Touch("a")

	removed := s.SweepOlderThan(10 * time.Millisecond)
	require.Empty(t, removed)
}

func TestMemoryStorageForEach(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	seen := 0
	s.ForEach(func(key string, value int) bool {
		seen++
		return true
	})
	require.Equal(t, 2, seen)

	// Early exit stops iteration
	seen = 0
	s.ForEach(func(key string, value int) bool {
		seen++
		return false
	})
	require.Equal(t, 1, seen)
}
