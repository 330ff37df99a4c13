package reach

import "math"

// Volume is a spatial region attached to an Interactable. Its representation
// belongs to the SpatialQuery in use; the core only needs its center.
type Volume interface {
	Center() Vec3
}

// SpatialQuery is the geometry service the scorers call into. It is treated as
// a black box; a panic or a non-finite result is scored as "worst" for that
// volume and never escapes the tick.
type SpatialQuery interface {
	Contains(point Vec3, v Volume) bool
	ClosestPoint(point Vec3, v Volume) Vec3
}

// Shape is a Volume that can answer geometric queries about itself.
type Shape interface {
	Volume
	Contains(point Vec3) bool
	ClosestPoint(point Vec3) Vec3
}

// --- Built-in shapes ---

// Sphere is a solid ball.
type Sphere struct {
	Origin Vec3
	Radius float64
}

// Center returns the sphere origin.
func (s Sphere) Center() Vec3 { return s.Origin }

// Contains reports whether p lies inside or on the sphere.
func (s Sphere) Contains(p Vec3) bool {
	d := p.Sub(s.Origin)
	return d.Dot(d) <= s.Radius*s.Radius
}

// ClosestPoint returns the point on or inside the sphere nearest to p.
// Points inside the sphere are returned unchanged.
func (s Sphere) ClosestPoint(p Vec3) Vec3 {
	d := p.Sub(s.Origin)
	l := d.Len()
	if l <= s.Radius {
		return p
	}
	return s.Origin.Add(d.Scale(s.Radius / l))
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max Vec3
}

// NewBoxFromCenter creates a Box from a center point and full size.
func NewBoxFromCenter(center, size Vec3) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box midpoint.
func (b Box) Center() Vec3 { return b.Min.Lerp(b.Max, 0.5) }

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ClosestPoint clamps p into the box.
func (b Box) ClosestPoint(p Vec3) Vec3 {
	return Vec3{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Default query ---

// ShapeQuery is the default SpatialQuery. It delegates to Shape volumes and
// reports anything else as degenerate.
type ShapeQuery struct{}

var nanPoint = Vec3{math.NaN(), math.NaN(), math.NaN()}

// Contains reports whether v contains point. Non-Shape volumes contain nothing.
func (ShapeQuery) Contains(point Vec3, v Volume) bool {
	s, ok := v.(Shape)
	if !ok {
		return false
	}
	return s.Contains(point)
}

// ClosestPoint returns the nearest point of v to point, or a NaN point when v
// is not a Shape.
func (ShapeQuery) ClosestPoint(point Vec3, v Volume) Vec3 {
	s, ok := v.(Shape)
	if !ok {
		return nanPoint
	}
	return s.ClosestPoint(point)
}
