package history

import (
	"errors"
	"testing"

	"github.com/akmonengine/blockgame/trail"
	"github.com/go-gl/mathgl/mgl64"
)

// walk records n moves of one unit along X starting at start
func walk(h *History, start mgl64.Vec3, n int) mgl64.Vec3 {
	position := start
	step := mgl64.Vec3{1, 0, 0}
	for rep := 0; rep < n; rep++ {
		h.RecordIfMoved(Entry{Position: position, Velocity: step}, step)
		position = position.Add(step)
	}
	return position
}

func TestHistory_Reset(t *testing.T) {
	h := New(4)
	walk(h, mgl64.Vec3{}, 10)

	h.Reset(mgl64.Vec3{0, 0.4, 0})

	if h.MoveCounter() != 1 {
		t.Errorf("MoveCounter() = %d, want 1", h.MoveCounter())
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
	if _, ok := h.Rewind(); ok {
		t.Error("Rewind() after reset should be a no-op")
	}
}

func TestHistory_RecordIfMoved(t *testing.T) {
	tests := []struct {
		name     string
		step     mgl64.Vec3
		recorded bool
	}{
		{"idle", mgl64.Vec3{}, false},
		{"below threshold", mgl64.Vec3{0.0005, 0, 0.0005}, false},
		{"at threshold", mgl64.Vec3{MoveThreshold, 0, 0}, false},
		{"move", mgl64.Vec3{0, -0.02, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(DefaultCapacity)
			got := h.RecordIfMoved(Entry{}, tt.step)
			if got != tt.recorded {
				t.Errorf("RecordIfMoved() = %v, want %v", got, tt.recorded)
			}

			expected := 1
			if tt.recorded {
				expected = 2
			}
			if h.MoveCounter() != expected {
				t.Errorf("MoveCounter() = %d, want %d", h.MoveCounter(), expected)
			}
		})
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	for _, capacity := range []int{DefaultCapacity, 0} {
		h := New(capacity)
		walk(h, mgl64.Vec3{}, 3)

		prev := Entry{Position: mgl64.Vec3{3, 1, -2}, Velocity: mgl64.Vec3{0.1, 0.3, 0}}
		counter := h.MoveCounter()

		h.RecordIfMoved(prev, mgl64.Vec3{0.1, 0.28, 0})
		got, ok := h.Rewind()

		if !ok {
			t.Fatalf("capacity %d: Rewind() returned false", capacity)
		}
		if got != prev {
			t.Errorf("capacity %d: Rewind() = %v, want %v", capacity, got, prev)
		}
		if h.MoveCounter() != counter {
			t.Errorf("capacity %d: MoveCounter() = %d, want %d", capacity, h.MoveCounter(), counter)
		}
	}
}

func TestHistory_RewindEmpty(t *testing.T) {
	h := New(8)
	walk(h, mgl64.Vec3{}, 2)

	for rep := 0; rep < 2; rep++ {
		if _, ok := h.Rewind(); !ok {
			t.Fatal("Rewind() should pop a recorded entry")
		}
	}
	if _, ok := h.Rewind(); ok {
		t.Error("Rewind() on an empty history should return false")
	}
	if h.MoveCounter() != 1 {
		t.Errorf("MoveCounter() = %d, want 1", h.MoveCounter())
	}
}

func TestHistory_Eviction(t *testing.T) {
	h := New(4)
	walk(h, mgl64.Vec3{}, 10)

	if h.MoveCounter() != 11 || h.Len() != 11 {
		t.Errorf("MoveCounter() = %d, Len() = %d, want 11", h.MoveCounter(), h.Len())
	}
	if h.Rewindable() != 4 {
		t.Errorf("Rewindable() = %d, want 4", h.Rewindable())
	}

	// Only the newest entries can be rewound, newest first
	for want := 9.0; want >= 6; want-- {
		e, ok := h.Rewind()
		if !ok || e.Position.X() != want {
			t.Errorf("Rewind() = %v, %v; want x=%v", e.Position, ok, want)
		}
	}
	if _, ok := h.Rewind(); ok {
		t.Error("evicted entries must not be rewound")
	}
	if h.Len() != h.MoveCounter() {
		t.Errorf("Len() = %d, MoveCounter() = %d", h.Len(), h.MoveCounter())
	}
}

func TestHistory_Finalize(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		moves    int
		velocity mgl64.Vec3
	}{
		{"no move", 16, 0, mgl64.Vec3{}},
		{"few moves", 16, 5, mgl64.Vec3{0.3, 0.2, -0.1}},
		{"wrapped ring", 4, 9, mgl64.Vec3{-0.5, 0.4, 0}},
		{"unbounded", 0, 40, mgl64.Vec3{2, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.capacity)
			start := mgl64.Vec3{0, 0.4, 0}
			h.Reset(start)

			position := start
			for i := 0; i < tt.moves; i++ {
				step := mgl64.Vec3{0.1, 0, float64(i%3) * 0.05}
				h.RecordIfMoved(Entry{Position: position, Velocity: tt.velocity}, step)
				position = position.Add(step)
			}

			goal := mgl64.Vec3{3, 1.4, -1}
			out, err := h.Finalize(goal)
			if err != nil {
				t.Fatalf("Finalize() error: %v", err)
			}

			if len(out) != h.MoveCounter()+BlendSteps {
				t.Errorf("len = %d, want %d", len(out), h.MoveCounter()+BlendSteps)
			}
			if out[0] != trail.Sample(start) {
				t.Errorf("first sample = %v, want start %v", out[0], start)
			}
			if out[len(out)-1] != trail.Sample(goal) {
				t.Errorf("last sample = %v, want goal %v", out[len(out)-1], goal)
			}

			// Blend samples move monotonically from the newest entry to the goal
			blend := out[len(out)-BlendSteps-1:]
			for axis := 0; axis < 3; axis++ {
				direction := blend[len(blend)-1][axis] - blend[0][axis]
				for i := 1; i < len(blend); i++ {
					delta := blend[i][axis] - blend[i-1][axis]
					if delta*direction < 0 {
						t.Errorf("axis %d not monotone at step %d: %v", axis, i, blend)
						break
					}
				}
			}
		})
	}
}

func TestHistory_FinalizeOnce(t *testing.T) {
	h := New(DefaultCapacity)
	walk(h, mgl64.Vec3{}, 3)

	if _, err := h.Finalize(mgl64.Vec3{5, 0, 0}); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if _, err := h.Finalize(mgl64.Vec3{5, 0, 0}); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrFinalized", err)
	}

	// Rewinding past the goal allows a new finalize from the new endpoint
	h.Rewind()
	out, err := h.Finalize(mgl64.Vec3{4, 0, 0})
	if err != nil {
		t.Fatalf("Finalize() after rewind error: %v", err)
	}
	if len(out) != 3+BlendSteps {
		t.Errorf("len = %d, want %d", len(out), 3+BlendSteps)
	}

	h.Reset(mgl64.Vec3{})
	if h.Finalized() {
		t.Error("Reset() should clear the finalized state")
	}
}

func TestBlend(t *testing.T) {
	e := Entry{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{0, 0, 0}}
	goal := mgl64.Vec3{8, -8, 0}

	for i := 1; i <= BlendSteps; i++ {
		got := Blend(e, goal, i)
		expected := goal.Mul(float64(i) / BlendSteps)
		if !got.ApproxEqual(expected) {
			t.Errorf("Blend(%d) = %v, want %v", i, got, expected)
		}
	}

	// A velocity pointing past the goal never overshoots it
	e.Velocity = mgl64.Vec3{10, 0, 0}
	for i := 1; i <= BlendSteps; i++ {
		if got := Blend(e, goal, i); got.X() > goal.X() {
			t.Errorf("Blend(%d) = %v overshoots %v", i, got, goal)
		}
	}
}
