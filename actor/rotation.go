package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidRotation = errors.New("invalid rotation")

// RotateUpdate is a rotation request about an arbitrary axis.
// Angles are in degrees; AngularVelocity is in degrees per tick.
type RotateUpdate struct {
	// Axis defaults to +Y when nil
	Axis            *mgl64.Vec3
	Angle           *float64
	AngularVelocity *float64
	// Reset restores the identity rotation and stops any spin before the
	// other fields are applied.
	Reset bool
}

// AxisRotation returns the rotation of degrees about axis
func AxisRotation(axis mgl64.Vec3, degrees float64) mgl64.Mat3 {
	return mgl64.HomogRotate3D(mgl64.DegToRad(degrees), axis.Normalize()).Mat3()
}

// Apply returns the updated rotation and per-tick spin.
// Rotations are composed in the local frame (post-multiplied).
func (u RotateUpdate) Apply(rotation, spin mgl64.Mat3) (mgl64.Mat3, mgl64.Mat3, error) {
	if !u.Reset && u.Angle == nil && u.AngularVelocity == nil {
		return rotation, spin, fmt.Errorf("%w: requires either 'reset', 'angle' or 'angular_velocity'", ErrInvalidRotation)
	}

	axis := mgl64.Vec3{0, 1, 0}
	if u.Axis != nil {
		axis = *u.Axis
	}
	if axis.Len() < 1e-12 {
		return rotation, spin, fmt.Errorf("%w: axis must not be zero", ErrInvalidRotation)
	}

	if u.Reset {
		rotation = mgl64.Ident3()
		spin = mgl64.Ident3()
	}
	if u.Angle != nil {
		rotation = rotation.Mul3(AxisRotation(axis, *u.Angle))
	}
	if u.AngularVelocity != nil {
		spin = spin.Mul3(AxisRotation(axis, *u.AngularVelocity))
	}

	return rotation, spin, nil
}
