package trail

import "github.com/go-gl/mathgl/mgl32"

const (
	// Lookahead matches the number of blend samples appended on finalize
	Lookahead = 8
	// Window is the number of trailing samples shown behind the ghost
	Window = 128
)

// Ghost evaluates a stored trail against the live move counter
type Ghost struct {
	Trail     Trail
	Lookahead int
	Window    int
}

func NewGhost(t Trail) *Ghost {
	return &Ghost{Trail: t, Lookahead: Lookahead, Window: Window}
}

// NotYetLost reports whether the live attempt is still on pace with the
// stored one. It is always true while no trail is stored.
func (g *Ghost) NotYetLost(moveCounter int) bool {
	return len(g.Trail) == 0 || len(g.Trail) > moveCounter+g.Lookahead
}

// Visible reports whether any part of the trail is still shown
func (g *Ghost) Visible(moveCounter int) bool {
	return len(g.Trail) > 0 && moveCounter < len(g.Trail)+g.Window
}

// Segment returns the bounds [first, last) of the trailing window ending at
// moveCounter, clamped to the trail.
func (g *Ghost) Segment(moveCounter int) (int, int) {
	first := min(max(0, moveCounter-g.Window), len(g.Trail))
	last := max(first, min(len(g.Trail), moveCounter))
	return first, last
}

// Samples returns the trailing window ending at moveCounter
func (g *Ghost) Samples(moveCounter int) Trail {
	if !g.Visible(moveCounter) {
		return nil
	}
	first, last := g.Segment(moveCounter)
	return g.Trail[first:last]
}

// Marker returns the ghost position at moveCounter, if the stored run was
// still going at that point.
func (g *Ghost) Marker(moveCounter int) (mgl32.Vec3, bool) {
	if moveCounter <= 0 || moveCounter > len(g.Trail) {
		return mgl32.Vec3{}, false
	}
	return g.Trail[moveCounter-1], true
}
