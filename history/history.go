package history

import (
	"errors"

	"github.com/akmonengine/blockgame/trail"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultCapacity is the number of entries kept for rewinding
	DefaultCapacity = 1024
	// MoveThreshold is the displacement below which a tick counts as idle
	MoveThreshold = 1e-3
	// BlendSteps is the number of samples easing the trail into the goal
	BlendSteps = 8
)

var ErrFinalized = errors.New("history already finalized")

// Entry is the player state before a move
type Entry struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// History records the moves of one attempt.
//
// Recent entries live in a ring of fixed capacity and can be rewound. Entries
// pushed out of the ring are final and only their position is kept, in trail
// precision. The start position counts as the first sample, so Len always
// equals the move counter.
type History struct {
	ring     []Entry
	head     int
	size     int
	capacity int

	// floor is the newest entry that can no longer be rewound
	floor     Entry
	flushed   trail.Trail
	counter   int
	finalized bool
}

// New returns a history keeping capacity rewindable entries.
// A capacity of zero or less keeps every entry.
func New(capacity int) *History {
	h := &History{capacity: capacity}
	if capacity > 0 {
		h.ring = make([]Entry, capacity)
	}
	h.Reset(mgl64.Vec3{})
	return h
}

// Reset starts a new attempt at start
func (h *History) Reset(start mgl64.Vec3) {
	if h.capacity <= 0 {
		h.ring = h.ring[:0]
	}
	h.head = 0
	h.size = 0
	h.floor = Entry{Position: start}
	h.flushed = append(h.flushed[:0], trail.Sample(start))
	h.counter = 1
	h.finalized = false
}

// MoveCounter returns the number of moves of the attempt, plus one for the start
func (h *History) MoveCounter() int {
	return h.counter
}

// Len returns the number of trail samples recorded so far
func (h *History) Len() int {
	return len(h.flushed) + h.size
}

// Rewindable returns the number of entries Rewind can still pop
func (h *History) Rewindable() int {
	return h.size
}

func (h *History) Finalized() bool {
	return h.finalized
}

// RecordIfMoved records prev, the state before this tick's move, when the
// step is long enough to count as a move. It reports whether it recorded.
func (h *History) RecordIfMoved(prev Entry, step mgl64.Vec3) bool {
	if step.Len() <= MoveThreshold {
		return false
	}

	h.push(prev)
	h.counter++
	return true
}

func (h *History) push(e Entry) {
	if h.capacity <= 0 {
		h.ring = append(h.ring, e)
		h.size++
		return
	}

	if h.size == h.capacity {
		oldest := h.ring[h.head]
		h.floor = oldest
		h.flushed = append(h.flushed, trail.Sample(oldest.Position))
		h.head = (h.head + 1) % h.capacity
		h.size--
	}
	h.ring[(h.head+h.size)%h.capacity] = e
	h.size++
}

func (h *History) at(i int) Entry {
	if h.capacity <= 0 {
		return h.ring[i]
	}
	return h.ring[(h.head+i)%h.capacity]
}

// Rewind pops the newest entry so the player can be restored to it.
// It returns false when nothing is left to rewind.
func (h *History) Rewind() (Entry, bool) {
	if h.size == 0 {
		return Entry{}, false
	}

	e := h.at(h.size - 1)
	h.size--
	if h.capacity <= 0 {
		h.ring = h.ring[:h.size]
	}
	h.counter--
	h.finalized = false

	return e, true
}

// Finalize returns the full trail of the attempt, followed by BlendSteps
// samples easing from the newest entry into goal. The last sample is goal.
// It may only be called once per attempt; a rewind allows it again.
func (h *History) Finalize(goal mgl64.Vec3) (trail.Trail, error) {
	if h.finalized {
		return nil, ErrFinalized
	}

	t := make(trail.Trail, 0, h.Len()+BlendSteps)
	t = append(t, h.flushed...)
	for i := 0; i < h.size; i++ {
		t = append(t, trail.Sample(h.at(i).Position))
	}

	last := h.floor
	if h.size > 0 {
		last = h.at(h.size - 1)
	}
	for i := 1; i <= BlendSteps; i++ {
		t = append(t, trail.Sample(Blend(last, goal, i)))
	}

	h.finalized = true
	return t, nil
}

// Blend returns blend step i of BlendSteps from e to goal: the position
// carried along the entry velocity, pulled towards the goal, and kept
// within the box spanned by the two endpoints.
func Blend(e Entry, goal mgl64.Vec3, i int) mgl64.Vec3 {
	n := float64(BlendSteps)
	k := float64(i)

	s := e.Position.Mul(n - k).
		Add(e.Velocity.Mul((n - k) * k)).
		Add(goal.Mul(k)).
		Mul(1 / n)

	for axis := 0; axis < 3; axis++ {
		lo := min(e.Position[axis], goal[axis])
		hi := max(e.Position[axis], goal[axis])
		s[axis] = mgl64.Clamp(s[axis], lo, hi)
	}
	return s
}
