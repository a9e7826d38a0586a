package tui

import (
	"math"

	"github.com/akmonengine/blockgame/actor"
	"github.com/gdamore/tcell/v2"
)

const (
	// HoldTicks is how long a key press counts as held, terminals send no key release
	HoldTicks = 6
	// TurnStep is the yaw change of one arrow key press, in radians
	TurnStep = math.Pi / 16
	// PitchStep is the pitch change of one page key press, in radians
	PitchStep = math.Pi / 32
)

type control uint8

const (
	forward control = iota
	backward
	left
	right
	jump
	rewind
	controls
)

// Keys turns terminal key presses into held controls
type Keys struct {
	held  [controls]int
	yaw   float64
	pitch float64
}

// Handle applies a key event. It returns false when the user asked to quit.
func (k *Keys) Handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		k.yaw += TurnStep
	case tcell.KeyRight:
		k.yaw -= TurnStep
	case tcell.KeyPgUp:
		k.pitch = math.Min(k.pitch+PitchStep, math.Pi/2)
	case tcell.KeyPgDn:
		k.pitch = math.Max(k.pitch-PitchStep, -math.Pi/2)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.press(forward)
		case 's', 'S':
			k.press(backward)
		case 'a', 'A':
			k.press(left)
		case 'd', 'D':
			k.press(right)
		case ' ':
			k.press(jump)
		case 'r', 'R':
			k.press(rewind)
		case 'q', 'Q':
			return false
		}
	}
	return true
}

func (k *Keys) press(c control) {
	k.held[c] = HoldTicks
	switch c {
	case forward:
		k.held[backward] = 0
	case backward:
		k.held[forward] = 0
	case left:
		k.held[right] = 0
	case right:
		k.held[left] = 0
	}
}

// Input returns the controls for one tick and ages every held key
func (k *Keys) Input() actor.Input {
	input := actor.Input{
		Forward:  k.held[forward] > 0,
		Backward: k.held[backward] > 0,
		Left:     k.held[left] > 0,
		Right:    k.held[right] > 0,
		Jump:     k.held[jump] > 0,
		Rewind:   k.held[rewind] > 0,
		Yaw:      k.yaw,
		Pitch:    k.pitch,
	}

	for c := range k.held {
		if k.held[c] > 0 {
			k.held[c]--
		}
	}
	return input
}
