package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// PlayerRadius is the radius of the sphere standing in for the player
	PlayerRadius = 0.4

	MoveSpeed     = 0.15
	JumpSpeed     = 0.4
	GroundControl = 0.3
	AirControl    = 0.05
	RotateSpeed   = 0.01
	diagonal      = 0.7071
)

// Gravity is applied once per tick while airborne (units per tick²)
var Gravity = mgl64.Vec3{0, -0.02, 0}

// Input is the state of the controls for one tick.
// Yaw and Pitch are absolute camera angles in radians.
type Input struct {
	Forward  bool    `msgpack:"f"`
	Backward bool    `msgpack:"b"`
	Left     bool    `msgpack:"l"`
	Right    bool    `msgpack:"r"`
	Jump     bool    `msgpack:"j"`
	Rewind   bool    `msgpack:"rw"`
	Yaw      float64 `msgpack:"yaw"`
	Pitch    float64 `msgpack:"pitch"`
}

// Player is the kinematic state of the player sphere.
// Velocity is a per-tick displacement.
type Player struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Airborne bool
	// GroundVelocity is the velocity of the surface the player stands on
	GroundVelocity mgl64.Vec3

	Yaw   float64
	Pitch float64
}

// Reset places the player at rest on the given position
func (p *Player) Reset(position mgl64.Vec3) {
	*p = Player{Position: position}
}

// Look sets the camera angles, wrapping yaw and clamping pitch
func (p *Player) Look(yaw, pitch float64) {
	for yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw < -math.Pi {
		yaw += 2 * math.Pi
	}
	p.Yaw = yaw
	p.Pitch = mgl64.Clamp(pitch, -math.Pi/2, math.Pi/2)
}

// Orientation returns the camera rotation (yaw about Y, then pitch about the local X axis)
func (p *Player) Orientation() mgl64.Mat3 {
	return mgl64.Rotate3DY(p.Yaw).Mul3(mgl64.Rotate3DX(p.Pitch))
}

// Control applies drag, steering, gravity and jumping to the velocity.
// Drag acts on the velocity relative to the ground so the player is carried
// by moving platforms.
func (p *Player) Control(in Input) {
	p.Look(in.Yaw, in.Pitch)

	control := GroundControl
	if p.Airborne {
		control = AirControl
	}

	relative := p.Velocity.Sub(p.GroundVelocity).Mul(1 - control)
	p.Velocity = p.GroundVelocity.Add(relative)

	dist := control * MoveSpeed
	if in.Forward != in.Backward && in.Left != in.Right {
		dist *= diagonal
	}

	forward := mgl64.Vec3{-math.Sin(p.Yaw), 0, -math.Cos(p.Yaw)}
	right := mgl64.Vec3{math.Cos(p.Yaw), 0, -math.Sin(p.Yaw)}
	if in.Forward {
		p.Velocity = p.Velocity.Add(forward.Mul(dist))
	}
	if in.Backward {
		p.Velocity = p.Velocity.Sub(forward.Mul(dist))
	}
	if in.Right {
		p.Velocity = p.Velocity.Add(right.Mul(dist))
	}
	if in.Left {
		p.Velocity = p.Velocity.Sub(right.Mul(dist))
	}

	if p.Airborne {
		p.Velocity = p.Velocity.Add(Gravity)
	} else if in.Jump {
		p.Velocity = p.Velocity.Add(mgl64.Vec3{0, JumpSpeed, 0})
		p.Airborne = true
	}
}
