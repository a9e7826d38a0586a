// Package scene binds scene description scripts to the world.
//
// Scenes are Lua scripts. They place blocks and gems, group blocks into
// kinematic objects and may define a global tick() function run once per
// simulation tick. Vectors are plain arrays: {x, y, z}.
package scene

import (
	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/kinematic"
	"github.com/go-gl/mathgl/mgl64"
)

// BlockInfo holds the optional fields of place_block and move_block.
// Nil fields are not supplied.
type BlockInfo struct {
	Position *mgl64.Vec3
	Size     *mgl64.Vec3
	Rotation *mgl64.Mat3
	Color    *uint32
}

// GemInfo describes a goal pickup and the record it races against
type GemInfo struct {
	Position mgl64.Vec3
	Record   string
}

// API is what scripts can change in the world.
// Errors are reported back to the calling script as argument errors.
type API interface {
	PlaceBlock(info BlockInfo) int
	MoveBlock(id int, info BlockInfo) error
	RotateBlock(id int, update actor.RotateUpdate) error

	CreateObject(ids []int, origin mgl64.Vec3) (int, error)
	MoveObject(id int, update kinematic.MoveUpdate) error
	RotateObject(id int, update actor.RotateUpdate) error
	UpdateObject(id int) error

	PlaceGem(info GemInfo) error
	SetStart(position mgl64.Vec3)
}
