package blockgame

import (
	"errors"
	"fmt"
	"log"

	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/fade"
	"github.com/akmonengine/blockgame/history"
	"github.com/akmonengine/blockgame/kinematic"
	"github.com/akmonengine/blockgame/scene"
	"github.com/akmonengine/blockgame/trail"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoScene = errors.New("no scene loaded")

// TrailStore persists finalized trails by record name
type TrailStore interface {
	Load(name string) (trail.Trail, error)
	Save(name string, t trail.Trail) error
}

// World is the simulation session: player, scenery and the attempt history.
// It is not safe for concurrent use; Step and Load run on one goroutine.
type World struct {
	Config Config
	Player actor.Player
	// Start is where the player spawns, set by the scene
	Start   mgl64.Vec3
	History *history.History
	Events  Events

	Colliders *actor.Colliders
	Objects   *kinematic.Objects
	Fade      *fade.Machine

	store  TrailStore
	logger *log.Logger

	blocks *blocks
	gems   *gems
	layers [4]Layer

	script *scene.Script
	// source reruns the current scene description on reload
	source func(*scene.Script) error
	name   string
	tick   uint64
	// loads counts scene loads, a reload mid-tick resets the player
	loads uint64
	quit  bool
}

func NewWorld(config Config, store TrailStore, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}

	w := &World{
		Config:  config,
		History: history.New(config.HistoryCapacity),
		Events:  NewEvents(),
		Fade:    fade.NewMachine(config.FadeDuration),
		store:   store,
		logger:  logger,
		blocks:  newBlocks(),
		gems:    &gems{},
	}
	w.Colliders = w.blocks.colliders
	w.Objects = w.blocks.objects
	w.layers = [4]Layer{w.blocks, &ground{}, w.gems, &fader{machine: w.Fade}}
	w.Start = w.defaultStart()

	return w
}

func (w *World) defaultStart() mgl64.Vec3 {
	return mgl64.Vec3{0, w.Config.PlayerRadius, 0}
}

// Load replaces the current scene with the scene file at path
func (w *World) Load(path string) error {
	return w.load(path, func(s *scene.Script) error { return s.DoFile(path) })
}

// LoadString replaces the current scene with scene source
func (w *World) LoadString(name, source string) error {
	return w.load(name, func(s *scene.Script) error { return s.DoString(source) })
}

func (w *World) load(name string, source func(*scene.Script) error) error {
	w.teardown()
	w.name = name
	w.source = source

	w.script = scene.NewScript(w)
	if err := source(w.script); err != nil {
		w.teardown()
		return err
	}

	w.History.Reset(w.Start)
	w.Player.Reset(w.Start)
	w.Fade.Begin()
	w.loads++

	w.logger.Printf("[World] Scene %s loaded: %d blocks, %d objects, %d gems",
		name, w.Colliders.Len(), w.Objects.Len(), len(w.gems.list))
	w.Events.emit(SceneLoadedEvent{
		Scene:   name,
		Blocks:  w.Colliders.Len(),
		Objects: w.Objects.Len(),
		Gems:    len(w.gems.list),
	})

	return nil
}

// teardown clears every layer together, so no id survives its scene
func (w *World) teardown() {
	if w.script != nil {
		w.script.Close()
		w.script = nil
	}
	for _, layer := range w.layers {
		layer.Clear()
	}
	w.Events.forgetContacts()
	w.Start = w.defaultStart()
}

// Reload runs the current scene description again from scratch
func (w *World) Reload() error {
	if w.source == nil {
		return ErrNoScene
	}
	return w.load(w.name, w.source)
}

// RequestQuit quits once the screen has faded to black
func (w *World) RequestQuit() {
	w.after(func() { w.quit = true })
}

// Quit reports whether a requested quit went through
func (w *World) Quit() bool {
	return w.quit
}

// after defers action until the fade out completes
func (w *World) after(action func()) {
	w.Fade.Trigger(func() {
		w.Events.emit(FadeBlackEvent{})
		action()
	})
}

func (w *World) reloadAfterFade() {
	w.after(func() {
		if err := w.Reload(); err != nil {
			w.logger.Printf("[World] Reload of %s failed: %v", w.name, err)
		}
	})
}

// Gems exposes the gems of the current scene
func (w *World) Gems() []*Gem {
	return w.gems.list
}

func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances the simulation by one tick
func (w *World) Step(input actor.Input) {
	w.tick++

	// Phase 1: Player control, or rewinding along the history
	if input.Rewind {
		w.rewind(input)
	} else {
		w.move(input)
	}

	// Phase 2: Scene animation, objects are solid at their new pose before collisions
	if w.script != nil {
		if err := w.script.Tick(); err != nil {
			w.logger.Printf("[World] %v", err)
		}
	}
	if err := w.Objects.UpdateAll(); err != nil {
		w.logger.Printf("[World] Object update failed: %v", err)
	}

	// Phase 3: Layers, contacts decide whether the player stands on something
	wasAirborne := w.Player.Airborne
	loads := w.loads
	w.Player.Airborne = true
	w.Player.GroundVelocity = mgl64.Vec3{}

	for _, layer := range w.layers {
		layer.Interact(w)
	}

	if wasAirborne && !w.Player.Airborne && w.loads == loads {
		w.Events.emit(LandedEvent{Position: w.Player.Position, SurfaceVelocity: w.Player.GroundVelocity})
	}

	w.Events.flush()
}

func (w *World) rewind(input actor.Input) {
	w.Player.Look(input.Yaw, input.Pitch)

	entry, ok := w.History.Rewind()
	if !ok {
		return
	}
	w.Player.Position = entry.Position
	w.Player.Velocity = entry.Velocity
	w.Events.emit(RewoundEvent{MoveCounter: w.History.MoveCounter()})
}

func (w *World) move(input actor.Input) {
	prev := history.Entry{Position: w.Player.Position, Velocity: w.Player.Velocity}

	w.Player.Control(input)
	if w.History.RecordIfMoved(prev, w.Player.Velocity) {
		w.Player.Position = w.Player.Position.Add(w.Player.Velocity)
	}
}

// reach handles the player picking up gem i
func (w *World) reach(i int, g *Gem) {
	g.Taken = true
	moves := w.History.MoveCounter()
	onPace := g.Ghost.NotYetLost(moves)

	w.Events.emit(GoalReachedEvent{Gem: i, Position: g.Position, MoveCounter: moves, OnPace: onPace})
	w.reloadAfterFade()

	if !onPace || g.Record == "" {
		return
	}

	samples, err := w.History.Finalize(g.Position.Add(mgl64.Vec3{0, w.Config.PlayerRadius, 0}))
	if err != nil {
		w.logger.Printf("[World] Finalize for %s skipped: %v", g.Record, err)
		return
	}

	if err := w.store.Save(g.Record, samples); err != nil {
		w.logger.Printf("[World] Saving record %s failed: %v", g.Record, err)
		w.Events.emit(TrailSaveFailedEvent{Record: g.Record, Err: err})
		return
	}
	w.Events.emit(TrailSavedEvent{Record: g.Record, Samples: len(samples)})
}

// Snapshot returns the current state for viewers
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        w.tick,
		Position:    w.Player.Position,
		Velocity:    w.Player.Velocity,
		Airborne:    w.Player.Airborne,
		Yaw:         w.Player.Yaw,
		Pitch:       w.Player.Pitch,
		MoveCounter: w.History.MoveCounter(),
	}
	for _, layer := range w.layers {
		layer.Draw(&s)
	}
	return s
}

func (w *World) String() string {
	return fmt.Sprintf("World{scene: %s, tick: %d, moves: %d}", w.name, w.tick, w.History.MoveCounter())
}
