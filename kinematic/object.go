package kinematic

import (
	"errors"
	"fmt"

	"github.com/akmonengine/blockgame/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidObject = errors.New("object id out of range")

// Pose is the shared translation and rotation of an object
type Pose struct {
	Offset   mgl64.Vec3
	Rotation mgl64.Mat3
}

// Member is a collider attached to an object, with its rest pose relative
// to the object origin.
type Member struct {
	ID           int
	BasePosition mgl64.Vec3
	BaseRotation mgl64.Mat3
}

// Object groups colliders that move and rotate as one unit.
// The pose is never integrated from the velocities: LinearVelocity and
// AngularVelocity only feed the surface velocity used by collision response.
type Object struct {
	Members []Member
	Origin  mgl64.Vec3
	Pose    Pose

	LinearVelocity mgl64.Vec3
	// AngularVelocity is the rotation applied per tick about the object pivot,
	// in the object frame like the pose rotation it is composed with
	AngularVelocity mgl64.Mat3
}

// WorldPose returns the current world position and rotation of a member
func (o *Object) WorldPose(member Member) (mgl64.Vec3, mgl64.Mat3) {
	rotation := o.Pose.Rotation.Mul3(member.BaseRotation)
	position := o.Pose.Rotation.Mul3x1(member.BasePosition).Add(o.Pose.Offset)

	return position, rotation
}

// WorldSpin returns the per-tick rotation in world frame: P·Ω·Pᵀ
func (o *Object) WorldSpin() mgl64.Mat3 {
	return o.Pose.Rotation.Mul3(o.AngularVelocity).Mul3(o.Pose.Rotation.Transpose())
}

// PointVelocity returns the per-tick displacement of a world point carried by
// the object: Ω·r − r + v with r relative to the object pivot.
func (o *Object) PointVelocity(point mgl64.Vec3) mgl64.Vec3 {
	r := point.Sub(o.Pose.Offset)
	return o.WorldSpin().Mul3x1(r).Sub(r).Add(o.LinearVelocity)
}

// MoveUpdate is a translation request. Reset restores the origin and stops the
// object before Offset and Acceleration are added.
type MoveUpdate struct {
	Offset       *mgl64.Vec3
	Acceleration *mgl64.Vec3
	Reset        bool
}

// Objects owns every kinematic object of a scene. Members hold collider ids
// by reference; the colliders themselves stay owned by the collider store.
type Objects struct {
	colliders *actor.Colliders
	objects   []*Object
}

func NewObjects(colliders *actor.Colliders) *Objects {
	return &Objects{colliders: colliders}
}

// Create groups the given colliders into a new object pivoting on origin.
// The current pose of each collider becomes its immutable base pose.
func (o *Objects) Create(ids []int, origin mgl64.Vec3) (int, error) {
	object := &Object{
		Members:         make([]Member, 0, len(ids)),
		Origin:          origin,
		Pose:            Pose{Offset: origin, Rotation: mgl64.Ident3()},
		AngularVelocity: mgl64.Ident3(),
	}

	for _, id := range ids {
		box, err := o.colliders.Get(id)
		if err != nil {
			return -1, err
		}
		object.Members = append(object.Members, Member{
			ID:           id,
			BasePosition: box.Position.Sub(origin),
			BaseRotation: box.Rotation,
		})
	}

	o.objects = append(o.objects, object)
	return len(o.objects) - 1, nil
}

// Get returns the object with the given id
func (o *Objects) Get(id int) (*Object, error) {
	if id < 0 || id >= len(o.objects) {
		return nil, fmt.Errorf("object %d: %w", id, ErrInvalidObject)
	}
	return o.objects[id], nil
}

// Move applies a translation request. Offsets are additive.
func (o *Objects) Move(id int, update MoveUpdate) error {
	object, err := o.Get(id)
	if err != nil {
		return err
	}

	if update.Reset {
		object.Pose.Offset = object.Origin
		object.LinearVelocity = mgl64.Vec3{}
	}
	if update.Offset != nil {
		object.Pose.Offset = object.Pose.Offset.Add(*update.Offset)
	}
	if update.Acceleration != nil {
		object.LinearVelocity = object.LinearVelocity.Add(*update.Acceleration)
	}

	return nil
}

// Rotate applies a rotation request about the object pivot
func (o *Objects) Rotate(id int, update actor.RotateUpdate) error {
	object, err := o.Get(id)
	if err != nil {
		return err
	}

	rotation, spin, err := update.Apply(object.Pose.Rotation, object.AngularVelocity)
	if err != nil {
		return fmt.Errorf("object %d: %w", id, err)
	}
	object.Pose.Rotation = rotation
	object.AngularVelocity = spin

	return nil
}

// Update pushes the object pose into every member collider, along with the
// velocity of the member center and the object spin.
func (o *Objects) Update(id int) error {
	object, err := o.Get(id)
	if err != nil {
		return err
	}

	for _, member := range object.Members {
		position, rotation := object.WorldPose(member)
		velocity := object.PointVelocity(position)
		// The box applies its spin in its own frame, B^T·Ω·B maps to the same world spin
		spin := member.BaseRotation.Transpose().Mul3(object.AngularVelocity).Mul3(member.BaseRotation)

		err := o.colliders.Update(member.ID, actor.BoxUpdate{
			Position: &position,
			Rotation: &rotation,
			Velocity: &velocity,
			Spin:     &spin,
		})
		if err != nil {
			return fmt.Errorf("object %d: %w", id, err)
		}
	}

	return nil
}

// UpdateAll updates every object in id order
func (o *Objects) UpdateAll() error {
	for id := range o.objects {
		if err := o.Update(id); err != nil {
			return err
		}
	}
	return nil
}

func (o *Objects) Len() int {
	return len(o.objects)
}

func (o *Objects) Clear() {
	clear(o.objects)
	o.objects = o.objects[:0]
}
