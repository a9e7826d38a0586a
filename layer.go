package blockgame

import (
	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/constraint"
	"github.com/akmonengine/blockgame/fade"
	"github.com/akmonengine/blockgame/kinematic"
	"github.com/akmonengine/blockgame/trail"
	"github.com/go-gl/mathgl/mgl64"
)

// Layer is one kind of scenery. The set of layers is closed and they run
// in a fixed order every tick.
type Layer interface {
	// Clear drops everything the previous scene placed
	Clear()
	// Interact applies the layer to the world for one tick
	Interact(w *World)
	// Draw fills the layer part of a snapshot
	Draw(s *Snapshot)
}

// blocks owns the colliders and the kinematic objects grouping them
type blocks struct {
	colliders *actor.Colliders
	objects   *kinematic.Objects
}

func newBlocks() *blocks {
	colliders := actor.NewColliders()
	return &blocks{
		colliders: colliders,
		objects:   kinematic.NewObjects(colliders),
	}
}

func (l *blocks) Clear() {
	l.objects.Clear()
	l.colliders.Clear()
}

func (l *blocks) Interact(w *World) {
	for id, box := range l.colliders.All() {
		contact, ok := constraint.BoxContact{Box: box, Radius: w.Config.PlayerRadius}.Resolve(&w.Player)
		if ok {
			w.Events.recordContact(id, contact)
		}
	}
}

func (l *blocks) Draw(s *Snapshot) {
	for id, box := range l.colliders.All() {
		s.Blocks = append(s.Blocks, BlockState{
			ID:          id,
			Position:    box.Position,
			HalfExtents: box.HalfExtents,
			Rotation:    box.Rotation,
			Color:       box.Color,
			Contact:     box.Contact,
		})
	}
}

type ground struct{}

func (l *ground) Clear() {}

func (l *ground) Interact(w *World) {
	constraint.Ground{Radius: w.Config.PlayerRadius}.Resolve(&w.Player)
}

func (l *ground) Draw(s *Snapshot) {}

// Gem is a goal pickup and the stored run racing to it
type Gem struct {
	Position mgl64.Vec3
	// Spin is the display rotation in degrees
	Spin   float64
	Taken  bool
	Record string
	Ghost  *trail.Ghost
}

type gems struct {
	list []*Gem
}

func (l *gems) Clear() {
	clear(l.list)
	l.list = l.list[:0]
}

func (l *gems) Interact(w *World) {
	for i, g := range l.list {
		if g.Taken {
			continue
		}
		g.Spin += w.Config.GemSpin

		dist := g.Position.Sub(w.Player.Position)
		if dist.Dot(dist) < w.Config.PlayerRadius*w.Config.PlayerRadius {
			w.reach(i, g)
		}
	}
}

func (l *gems) Draw(s *Snapshot) {
	for _, g := range l.list {
		state := GemState{
			Position: g.Position,
			Spin:     g.Spin,
			Taken:    g.Taken,
			OnPace:   g.Ghost.NotYetLost(s.MoveCounter),
			Trail:    g.Ghost.Samples(s.MoveCounter),
		}
		if marker, ok := g.Ghost.Marker(s.MoveCounter); ok {
			state.Marker = &marker
		}
		s.Gems = append(s.Gems, state)
	}
}

// fader drives the scene transition machine
type fader struct {
	machine *fade.Machine
}

func (l *fader) Clear() {}

func (l *fader) Interact(w *World) {
	l.machine.Advance()
}

func (l *fader) Draw(s *Snapshot) {
	s.Fade = l.machine.State().String()
	s.Alpha = l.machine.Alpha()
}
