// Package search implements the listing search and ranking engine:
// geographic bounding boxes, filter matching, tenant compatibility
// scoring and the orchestration of the four into paginated results.
// Everything in this package is pure computation over in-memory
// candidates; it holds no state and is safe for concurrent use.
package search

import "math"

// kmPerDegreeLat is the length of one degree of latitude in
// kilometres.  The same constant scales longitude degrees after
// correcting for latitude.
const kmPerDegreeLat = 111.32

// Box is a rectangular latitude/longitude window approximating a
// circular search radius.  The approximation is intentional: ranking
// must stay identical to the historical behaviour, so a great-circle
// radius must not be substituted here.
type Box struct {
    LatMin float64
    LatMax float64
    LngMin float64
    LngMax float64
}

// BoundingBox returns the box of side 2*radiusKm centred on the
// given point.  The longitude delta grows as the latitude approaches
// the poles; when cos(lat) is effectively zero the box falls back to
// the full longitude circle rather than dividing by zero.
func BoundingBox(lat, lng, radiusKm float64) Box {
    latDelta := radiusKm / kmPerDegreeLat
    b := Box{LatMin: lat - latDelta, LatMax: lat + latDelta}

    cos := math.Cos(lat * math.Pi / 180)
    if math.Abs(cos) < 1e-9 {
        b.LngMin, b.LngMax = -180, 180
        return b
    }
    lngDelta := radiusKm / (kmPerDegreeLat * cos)
    b.LngMin = lng - lngDelta
    b.LngMax = lng + lngDelta
    return b
}

// Contains reports whether the point lies inside the box, bounds
// inclusive.
func (b Box) Contains(lat, lng float64) bool {
    return lat >= b.LatMin && lat <= b.LatMax &&
        lng >= b.LngMin && lng <= b.LngMax
}
