package blockgame

import (
	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/kinematic"
	"github.com/akmonengine/blockgame/scene"
	"github.com/akmonengine/blockgame/trail"
	"github.com/go-gl/mathgl/mgl64"
)

var _ scene.API = (*World)(nil)

// PlaceBlock adds a block. Missing fields default to the origin, a zero
// size, no rotation and DefaultColor.
func (w *World) PlaceBlock(info scene.BlockInfo) int {
	var position, size mgl64.Vec3
	rotation := mgl64.Ident3()
	color := actor.DefaultColor

	if info.Position != nil {
		position = *info.Position
	}
	if info.Size != nil {
		size = *info.Size
	}
	if info.Rotation != nil {
		rotation = *info.Rotation
	}
	if info.Color != nil {
		color = *info.Color
	}

	return w.Colliders.Create(position, size, rotation, color)
}

func (w *World) MoveBlock(id int, info scene.BlockInfo) error {
	return w.Colliders.Update(id, actor.BoxUpdate{
		Position:    info.Position,
		HalfExtents: info.Size,
		Rotation:    info.Rotation,
		Color:       info.Color,
	})
}

func (w *World) RotateBlock(id int, update actor.RotateUpdate) error {
	return w.Colliders.Rotate(id, update)
}

func (w *World) CreateObject(ids []int, origin mgl64.Vec3) (int, error) {
	return w.Objects.Create(ids, origin)
}

func (w *World) MoveObject(id int, update kinematic.MoveUpdate) error {
	return w.Objects.Move(id, update)
}

func (w *World) RotateObject(id int, update actor.RotateUpdate) error {
	return w.Objects.Rotate(id, update)
}

func (w *World) UpdateObject(id int) error {
	return w.Objects.Update(id)
}

// PlaceGem adds a goal and loads the stored run for its record, if any.
// A record that cannot be read is raced as if none was stored.
func (w *World) PlaceGem(info scene.GemInfo) error {
	stored := trail.Trail{}
	if info.Record != "" {
		if err := trail.ValidateName(info.Record); err != nil {
			return err
		}

		loaded, err := w.store.Load(info.Record)
		if err != nil {
			w.logger.Printf("[World] Record %s ignored: %v", info.Record, err)
		} else {
			stored = loaded
		}
	}

	ghost := trail.NewGhost(stored)
	ghost.Lookahead = w.Config.Lookahead
	ghost.Window = w.Config.TrailWindow

	w.gems.list = append(w.gems.list, &Gem{
		Position: info.Position,
		Record:   info.Record,
		Ghost:    ghost,
	})
	return nil
}

func (w *World) SetStart(position mgl64.Vec3) {
	w.Start = position
}
