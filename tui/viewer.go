// Package tui draws a top-down view of the world in a terminal and reads the
// player controls from the keyboard.
package tui

import (
	"fmt"
	"math"

	"github.com/akmonengine/blockgame"
	"github.com/akmonengine/blockgame/actor"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Horizontal and vertical cells per world unit; terminal cells are about twice as tall as wide
	scaleX = 2.0
	scaleZ = 1.0
)

var (
	styleStatus  = tcell.StyleDefault.Reverse(true)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleContact = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleOnPace  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLost    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleGem     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleGemLost = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Viewer renders snapshots centered on the player, X to the right and Z down
type Viewer struct {
	screen tcell.Screen
	Keys   Keys
}

func NewViewer(screen tcell.Screen) *Viewer {
	return &Viewer{screen: screen}
}

// NewTerminalViewer opens the terminal screen
func NewTerminalViewer() (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewViewer(screen), nil
}

func (v *Viewer) Close() {
	v.screen.Fini()
}

// Events forwards screen events until the screen is finalized
func (v *Viewer) Events(events chan<- tcell.Event) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		events <- ev
	}
}

// HandleEvent applies a screen event. It returns false when the user asked to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.Keys.Handle(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// cell maps a world position to a screen cell relative to center
func (v *Viewer) cell(center, p mgl64.Vec3) (int, int) {
	w, h := v.screen.Size()
	x := w/2 + int(math.Round((p.X()-center.X())*scaleX))
	y := h/2 + int(math.Round((p.Z()-center.Z())*scaleZ))
	return x, y
}

// view returns the world region shown around center, unbounded in height
func (v *Viewer) view(center mgl64.Vec3) actor.AABB {
	w, h := v.screen.Size()
	extent := mgl64.Vec3{float64(w) / 2 / scaleX, math.Inf(1), float64(h) / 2 / scaleZ}
	return actor.AABB{Min: center.Sub(extent), Max: center.Add(extent)}
}

func (v *Viewer) set(x, y int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	// The last row holds the status line
	if x < 0 || y < 0 || x >= w || y >= h-1 {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// Draw renders one snapshot
func (v *Viewer) Draw(s blockgame.Snapshot) {
	v.screen.Clear()
	center := s.Position

	view := v.view(center)
	for _, block := range s.Blocks {
		v.drawBlock(center, view, block)
	}

	for _, gem := range s.Gems {
		trailStyle := styleOnPace
		gemStyle := styleGem
		if !gem.OnPace {
			trailStyle = styleLost
			gemStyle = styleGemLost
		}

		for _, p := range gem.Trail {
			sample := mgl64.Vec3{float64(p.X()), float64(p.Y()), float64(p.Z())}
			if !view.ContainsPoint(sample) {
				continue
			}
			x, y := v.cell(center, sample)
			v.set(x, y, '·', trailStyle)
		}
		if gem.Marker != nil {
			x, y := v.cell(center, mgl64.Vec3{float64(gem.Marker.X()), 0, float64(gem.Marker.Z())})
			v.set(x, y, '*', trailStyle)
		}
		if !gem.Taken {
			x, y := v.cell(center, gem.Position)
			v.set(x, y, '◆', gemStyle)
		}
	}

	x, y := v.cell(center, center)
	v.set(x, y, '@', stylePlayer)

	v.drawStatus(s)
	v.screen.Show()
}

// drawBlock fills the footprint of a block, lighter for higher blocks.
// Blocks outside view are skipped along with their contact marker.
func (v *Viewer) drawBlock(center mgl64.Vec3, view actor.AABB, block blockgame.BlockState) {
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	box := actor.Box{Position: block.Position, HalfExtents: block.HalfExtents, Rotation: block.Rotation}
	for _, corner := range box.Corners() {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = math.Min(lo[axis], corner[axis])
			hi[axis] = math.Max(hi[axis], corner[axis])
		}
	}

	if !view.Overlaps(actor.AABB{Min: lo, Max: hi}) {
		return
	}

	x0, y0 := v.cell(center, lo)
	x1, y1 := v.cell(center, hi)
	style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(block.Color & 0xffffff)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v.set(x, y, shade(hi.Y()), style)
		}
	}

	x, y := v.cell(center, block.Contact)
	v.set(x, y, '+', styleContact)
}

// shade picks a glyph for the top height of a block
func shade(top float64) rune {
	switch {
	case top < 1:
		return '░'
	case top < 3:
		return '▒'
	case top < 6:
		return '▓'
	default:
		return '█'
	}
}

func (v *Viewer) drawStatus(s blockgame.Snapshot) {
	w, h := v.screen.Size()
	state := "walking"
	if s.Airborne {
		state = "airborne"
	}
	line := fmt.Sprintf(" tick %d  moves %d  y %.2f  %s  fade %s %.0f%%",
		s.Tick, s.MoveCounter, s.Position.Y(), state, s.Fade, s.Alpha*100)

	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		v.screen.SetContent(col, h-1, r, nil, styleStatus)
		col++
	}
	for ; col < w; col++ {
		v.screen.SetContent(col, h-1, ' ', nil, styleStatus)
	}
}
