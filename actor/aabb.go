package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box.
// For colliders it is expressed in the collider's own rotated frame.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint reports whether point lies inside the box or on its faces
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return a.Clamp(point) == point
}

// Overlaps reports whether the two boxes share at least a face
func (a AABB) Overlaps(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if a.Max[axis] < other.Min[axis] || other.Max[axis] < a.Min[axis] {
			return false
		}
	}
	return true
}

// Clamp returns the point of the AABB closest to point.
// A point inside the box is returned unchanged.
// The upper bound wins when Min > Max on an axis (degenerate boxes).
func (a AABB) Clamp(point mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Min(a.Max.X(), math.Max(a.Min.X(), point.X())),
		math.Min(a.Max.Y(), math.Max(a.Min.Y(), point.Y())),
		math.Min(a.Max.Z(), math.Max(a.Min.Z(), point.Z())),
	}
}
