package constraint

import (
	"math"

	"github.com/akmonengine/blockgame/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MinDistanceSq discards contacts where the player center already lies
	// on (or inside) the bound: no usable normal exists there.
	MinDistanceSq = 1e-6
	// GroundThreshold is the normal Y below which a contact counts as standing on top
	GroundThreshold = -0.8
)

// Constraint resolves the player against one surface
type Constraint interface {
	Resolve(player *actor.Player) (Contact, bool)
}

// Contact describes one resolved contact.
// Normal points from the player towards the surface.
type Contact struct {
	Point           mgl64.Vec3
	Normal          mgl64.Vec3
	Depth           float64
	SurfaceVelocity mgl64.Vec3
	Grounded        bool
}

// removeClosingVelocity cancels the part of velocity moving into the surface,
// relative to the surface velocity. It never adds energy.
func removeClosingVelocity(velocity, normal, surfaceVelocity mgl64.Vec3) mgl64.Vec3 {
	closing := math.Max(normal.Dot(velocity.Sub(surfaceVelocity)), 0)
	return velocity.Sub(normal.Mul(closing))
}

// land marks the player as standing on a surface moving at surfaceVelocity
func land(player *actor.Player, surfaceVelocity mgl64.Vec3) {
	player.Airborne = false
	player.GroundVelocity = surfaceVelocity
}
