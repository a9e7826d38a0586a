package blockgame

import (
	"github.com/akmonengine/blockgame/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
	LANDED
	GOAL_REACHED
	TRAIL_SAVED
	TRAIL_SAVE_FAILED
	FADE_BLACK
	SCENE_LOADED
	REWOUND
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Contact events, keyed by block id
type ContactEnterEvent struct {
	Block   int
	Contact constraint.Contact
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Block   int
	Contact constraint.Contact
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

type ContactExitEvent struct {
	Block int
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// LandedEvent is sent when the player touches ground after being airborne
type LandedEvent struct {
	Position        mgl64.Vec3
	SurfaceVelocity mgl64.Vec3
}

func (e LandedEvent) Type() EventType { return LANDED }

type GoalReachedEvent struct {
	Gem         int
	Position    mgl64.Vec3
	MoveCounter int
	// OnPace is false when the stored run was faster; the trail is then not saved
	OnPace bool
}

func (e GoalReachedEvent) Type() EventType { return GOAL_REACHED }

type TrailSavedEvent struct {
	Record  string
	Samples int
}

func (e TrailSavedEvent) Type() EventType { return TRAIL_SAVED }

type TrailSaveFailedEvent struct {
	Record string
	Err    error
}

func (e TrailSaveFailedEvent) Type() EventType { return TRAIL_SAVE_FAILED }

type FadeBlackEvent struct{}

func (e FadeBlackEvent) Type() EventType { return FADE_BLACK }

type SceneLoadedEvent struct {
	Scene   string
	Blocks  int
	Objects int
	Gems    int
}

func (e SceneLoadedEvent) Type() EventType { return SCENE_LOADED }

type RewoundEvent struct {
	MoveCounter int
}

func (e RewoundEvent) Type() EventType { return REWOUND }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousContacts map[int]bool
	currentContacts  map[int]constraint.Contact
}

func NewEvents() Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 64),
		previousContacts: make(map[int]bool),
		currentContacts:  make(map[int]constraint.Contact),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emit buffers an event until the end of the tick
func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// recordContact is called by the block layer for every resolved contact
func (e *Events) recordContact(block int, contact constraint.Contact) {
	e.currentContacts[block] = contact
}

// processContactEvents compares current and previous contacts to detect Enter/Stay/Exit
func (e *Events) processContactEvents() {
	for block, contact := range e.currentContacts {
		if e.previousContacts[block] {
			e.buffer = append(e.buffer, ContactStayEvent{Block: block, Contact: contact})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Block: block, Contact: contact})
		}
	}

	for block := range e.previousContacts {
		if _, ok := e.currentContacts[block]; !ok {
			e.buffer = append(e.buffer, ContactExitEvent{Block: block})
		}
	}

	clear(e.previousContacts)
	for block := range e.currentContacts {
		e.previousContacts[block] = true
	}
	clear(e.currentContacts)
}

// forgetContacts drops contact tracking, as block ids are reused by the next scene
func (e *Events) forgetContacts() {
	clear(e.previousContacts)
	clear(e.currentContacts)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
