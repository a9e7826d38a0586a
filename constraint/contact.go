package constraint

import (
	"math"

	"github.com/akmonengine/blockgame/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// BoxContact resolves the player sphere against a single oriented box.
// Boxes are resolved independently and sequentially; edge and corner contacts
// yield a diagonal normal and go through the same path as face contacts.
type BoxContact struct {
	Box    *actor.Box
	Radius float64
}

// Resolve projects the player on the box bound and, when the sphere overlaps,
// pushes it out to the margin boundary and removes the closing velocity.
// The projected point is always stored on the box as its contact marker.
func (c BoxContact) Resolve(player *actor.Player) (Contact, bool) {
	projected := c.Box.Project(player.Position)
	c.Box.Contact = projected

	dist := projected.Sub(player.Position)
	d2 := dist.Dot(dist)
	if d2 <= MinDistanceSq || d2 > c.Radius*c.Radius {
		return Contact{Point: projected}, false
	}

	d := math.Sqrt(d2)
	normal := dist.Mul(1 / d)
	depth := c.Radius - d - actor.Margin

	surface := c.Box.SurfaceVelocity(projected)

	// Move out of the box
	player.Position = player.Position.Sub(normal.Mul(depth))
	player.Velocity = removeClosingVelocity(player.Velocity, normal, surface)

	contact := Contact{
		Point:           projected,
		Normal:          normal,
		Depth:           depth,
		SurfaceVelocity: surface,
		Grounded:        normal.Y() < GroundThreshold,
	}
	if contact.Grounded {
		land(player, surface)
	}

	return contact, true
}

// Ground is the implicit unbounded floor. The player center never goes below
// y = Radius.
type Ground struct {
	Radius float64
}

func (g Ground) Resolve(player *actor.Player) (Contact, bool) {
	if player.Position.Y() > g.Radius+actor.Margin {
		return Contact{}, false
	}

	normal := mgl64.Vec3{0, -1, 0}
	depth := g.Radius - player.Position.Y()

	player.Position[1] = g.Radius
	player.Velocity = removeClosingVelocity(player.Velocity, normal, mgl64.Vec3{})
	land(player, mgl64.Vec3{})

	return Contact{
		Point:    mgl64.Vec3{player.Position.X(), 0, player.Position.Z()},
		Normal:   normal,
		Depth:    depth,
		Grounded: true,
	}, true
}
