package blockgame

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a read-only view of the world after a tick, for viewers
type Snapshot struct {
	Tick        uint64     `msgpack:"tick"`
	Position    mgl64.Vec3 `msgpack:"pos"`
	Velocity    mgl64.Vec3 `msgpack:"vel"`
	Airborne    bool       `msgpack:"airborne"`
	Yaw         float64    `msgpack:"yaw"`
	Pitch       float64    `msgpack:"pitch"`
	MoveCounter int        `msgpack:"moves"`

	Fade  string  `msgpack:"fade"`
	Alpha float64 `msgpack:"alpha"`

	Blocks []BlockState `msgpack:"blocks"`
	Gems   []GemState   `msgpack:"gems"`
}

type BlockState struct {
	ID          int        `msgpack:"id"`
	Position    mgl64.Vec3 `msgpack:"pos"`
	HalfExtents mgl64.Vec3 `msgpack:"size"`
	Rotation    mgl64.Mat3 `msgpack:"rot"`
	Color       uint32     `msgpack:"color"`
	// Contact is the latest projected point of the player on the block
	Contact mgl64.Vec3 `msgpack:"contact"`
}

type GemState struct {
	Position mgl64.Vec3 `msgpack:"pos"`
	Spin     float64    `msgpack:"spin"`
	Taken    bool       `msgpack:"taken"`
	OnPace   bool       `msgpack:"on_pace"`
	// Trail is the trailing window of the ghost, Marker its current position
	Trail  []mgl32.Vec3 `msgpack:"trail"`
	Marker *mgl32.Vec3  `msgpack:"marker,omitempty"`
}
