package search

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestBoundingBoxContainsCenter(t *testing.T) {
    // The search center must always fall inside its own box.
    for _, radius := range []float64{0.5, 1, 10, 100} {
        b := BoundingBox(48.8566, 2.3522, radius)
        assert.True(t, b.Contains(48.8566, 2.3522), "radius %v", radius)
    }
}

func TestBoundingBoxLatitudeDelta(t *testing.T) {
    b := BoundingBox(45, 5, 111.32)
    // 111.32 km is exactly one degree of latitude.
    assert.InDelta(t, 44, b.LatMin, 1e-9)
    assert.InDelta(t, 46, b.LatMax, 1e-9)
}

func TestBoundingBoxLongitudeWidensWithLatitude(t *testing.T) {
    eq := BoundingBox(0, 0, 10)
    north := BoundingBox(60, 0, 10)
    require.Less(t, eq.LngMax-eq.LngMin, north.LngMax-north.LngMin,
        "longitude window must widen away from the equator")
}

func TestBoundingBoxPolarFallback(t *testing.T) {
    // cos(90°) is ~0; the box must not blow up and instead spans the
    // full longitude circle.
    b := BoundingBox(90, 12, 5)
    assert.Equal(t, -180.0, b.LngMin)
    assert.Equal(t, 180.0, b.LngMax)
    assert.True(t, b.Contains(90, -77))
    assert.True(t, b.Contains(90, 179))
}

func TestContainsIsInclusive(t *testing.T) {
    b := Box{LatMin: 10, LatMax: 20, LngMin: 30, LngMax: 40}
    assert.True(t, b.Contains(10, 30))
    assert.True(t, b.Contains(20, 40))
    assert.False(t, b.Contains(9.999, 35))
    assert.False(t, b.Contains(15, 40.001))
}
