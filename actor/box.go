package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Margin inflates every collider bound so resting contact is detected
// slightly before visual penetration.
const Margin = 0.002

// DefaultColor is used when a block is placed without a color.
const DefaultColor uint32 = 0xffffff

var ErrInvalidCollider = errors.New("block id out of range")

// Box represents an oriented box collider.
// The box is defined by its center, its half-extents and an orthonormal rotation.
//
// Zero or negative half-extents are accepted as is: they produce degenerate
// bounds that either always or never report contact.
type Box struct {
	Position    mgl64.Vec3
	HalfExtents mgl64.Vec3
	Rotation    mgl64.Mat3
	Color       uint32

	// Velocity is the per-tick velocity of the box center. It stays zero for
	// static blocks and is written by the kinematic layer for object members.
	Velocity mgl64.Vec3
	// Spin is the per-tick rotation of the box about its center, in the box
	// frame, minus the identity. The zero value means no rotation.
	Spin mgl64.Mat3
	// Contact is the latest projected point of the player on this box,
	// kept for diagnostics even when no correction happened.
	Contact mgl64.Vec3

	bound AABB
}

// ComputeBound recomputes the local-frame bound: R^T*p +- (h + Margin)
func (b *Box) ComputeBound() {
	center := b.Rotation.Transpose().Mul3x1(b.Position)
	extent := b.HalfExtents.Add(mgl64.Vec3{Margin, Margin, Margin})

	b.bound = AABB{Min: center.Sub(extent), Max: center.Add(extent)}
}

func (b *Box) GetBound() AABB {
	return b.bound
}

// SurfaceVelocity returns the per-tick displacement of a point attached to the box:
// v + Ω·r − r with r relative to the box center and Ω = R·spin·Rᵀ in world frame.
func (b *Box) SurfaceVelocity(point mgl64.Vec3) mgl64.Vec3 {
	spin := b.Rotation.Mul3(b.Spin).Mul3(b.Rotation.Transpose())
	return b.Velocity.Add(spin.Mul3x1(point.Sub(b.Position)))
}

// Project returns the world-space point of the bound closest to point.
func (b *Box) Project(point mgl64.Vec3) mgl64.Vec3 {
	local := b.Rotation.Transpose().Mul3x1(point)
	return b.Rotation.Mul3x1(b.bound.Clamp(local))
}

// Corners returns the 8 world-space corners of the box, for viewers.
func (b *Box) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{-b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()}
		if i&4 != 0 {
			local[0] = b.HalfExtents.X()
		}
		if i&2 != 0 {
			local[1] = b.HalfExtents.Y()
		}
		if i&1 != 0 {
			local[2] = b.HalfExtents.Z()
		}
		corners[i] = b.Rotation.Mul3x1(local).Add(b.Position)
	}
	return corners
}

// BoxUpdate carries the optional fields of a block mutation.
// Nil fields are left untouched.
type BoxUpdate struct {
	Position    *mgl64.Vec3
	HalfExtents *mgl64.Vec3
	Rotation    *mgl64.Mat3
	Color       *uint32
	Velocity    *mgl64.Vec3
	// Spin is a full per-tick rotation matrix, in the box frame
	Spin *mgl64.Mat3
}

// Colliders owns every box of a scene. Ids are indices and are never reused
// until the whole store is cleared.
type Colliders struct {
	boxes []*Box
}

func NewColliders() *Colliders {
	return &Colliders{boxes: make([]*Box, 0, 64)}
}

// Create appends a collider and returns its id
func (c *Colliders) Create(position, halfExtents mgl64.Vec3, rotation mgl64.Mat3, color uint32) int {
	box := &Box{
		Position:    position,
		HalfExtents: halfExtents,
		Rotation:    rotation,
		Color:       color,
	}
	box.ComputeBound()
	c.boxes = append(c.boxes, box)

	return len(c.boxes) - 1
}

// Update mutates the supplied fields of a collider, then recomputes its bound
func (c *Colliders) Update(id int, update BoxUpdate) error {
	box, err := c.Get(id)
	if err != nil {
		return err
	}

	if update.Position != nil {
		box.Position = *update.Position
	}
	if update.HalfExtents != nil {
		box.HalfExtents = *update.HalfExtents
	}
	if update.Rotation != nil {
		box.Rotation = *update.Rotation
	}
	if update.Color != nil {
		box.Color = *update.Color
	}
	if update.Velocity != nil {
		box.Velocity = *update.Velocity
	}
	if update.Spin != nil {
		box.Spin = update.Spin.Sub(mgl64.Ident3())
	}
	box.ComputeBound()

	return nil
}

// Rotate applies a rotation request to a single block, about its own center
func (c *Colliders) Rotate(id int, update RotateUpdate) error {
	box, err := c.Get(id)
	if err != nil {
		return err
	}

	rotation, spin, err := update.Apply(box.Rotation, box.Spin.Add(mgl64.Ident3()))
	if err != nil {
		return fmt.Errorf("block %d: %w", id, err)
	}

	return c.Update(id, BoxUpdate{Rotation: &rotation, Spin: &spin})
}

// Get returns the collider with the given id
func (c *Colliders) Get(id int) (*Box, error) {
	if id < 0 || id >= len(c.boxes) {
		return nil, fmt.Errorf("block %d: %w", id, ErrInvalidCollider)
	}
	return c.boxes[id], nil
}

// Bound returns the local-frame bound of a collider
func (c *Colliders) Bound(id int) (AABB, error) {
	box, err := c.Get(id)
	if err != nil {
		return AABB{}, err
	}
	return box.GetBound(), nil
}

func (c *Colliders) Len() int {
	return len(c.boxes)
}

// All exposes the boxes in id order. The slice must not be retained across Clear.
func (c *Colliders) All() []*Box {
	return c.boxes
}

func (c *Colliders) Clear() {
	clear(c.boxes)
	c.boxes = c.boxes[:0]
}
