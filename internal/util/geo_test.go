package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is roughly 111 km
	d := HaversineDistance(51.0, -114.0, 52.0, -114.0)
	require.InDelta(t, 111195, d, 300)

	require.InDelta(t, 0, HaversineDistance(51.0, -114.0, 51.0, -114.0), 1e-6)
}

func TestLocalPlanarSigns(t *testing.T) {
	// North-east of the origin: both offsets positive
	ne := LocalPlanar(51.0, -114.0, 51.01, -113.99)
	require.Greater(t, ne[0], 0.0)
	require.Greater(t, ne[1], 0.0)

	// South-west of the origin: both offsets negative
	sw := LocalPlanar(51.0, -114.0, 50.99, -114.01)
	require.Less(t, sw[0], 0.0)
	require.Less(t, sw[1], 0.0)

	origin := LocalPlanar(51.0, -114.0, 51.0, -114.0)
	require.InDelta(t, 0, origin[0], 1e-6)
	require.InDelta(t, 0, origin[1], 1e-6)
}

func TestShortUUID(t *testing.T) {
	a := ShortUUID()
	b := ShortUUID()

	require.Len(t, a, 22)
	require.NotEqual(t, a, b)
}
