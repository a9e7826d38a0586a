package fade

// DefaultDuration is the length of a fade in ticks
const DefaultDuration = 60

type State uint8

const (
	NONE State = iota
	FADE_OUT
	BLACK
	FADE_IN
)

func (s State) String() string {
	switch s {
	case NONE:
		return "NONE"
	case FADE_OUT:
		return "FADE_OUT"
	case BLACK:
		return "BLACK"
	case FADE_IN:
		return "FADE_IN"
	default:
		return "UNKNOWN"
	}
}

// Action is run once the screen is fully black
type Action func()

// Machine sequences scene transitions: NONE -> FADE_OUT -> BLACK -> FADE_IN -> NONE.
// A deferred action only ever runs on entering BLACK, and at most once.
type Machine struct {
	state    State
	counter  int
	duration int
	action   Action
}

func NewMachine(duration int) *Machine {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Machine{duration: duration}
}

// Begin starts fading in from black, as on a scene load.
// Any pending action is dropped.
func (m *Machine) Begin() {
	m.state = FADE_IN
	m.counter = m.duration
	m.action = nil
}

// Trigger starts fading out, from the current opacity, and defers action
// until the screen is black. Only one action is pending at a time; the
// latest one wins.
func (m *Machine) Trigger(action Action) {
	m.action = action
	m.state = FADE_OUT
}

// Advance moves the machine one tick forward and returns the new state
func (m *Machine) Advance() State {
	switch m.state {
	case FADE_OUT:
		if m.counter < m.duration {
			m.counter++
		} else {
			m.state = BLACK
			m.fire()
		}
	case BLACK:
		m.state = FADE_IN
	case FADE_IN:
		if m.counter > 0 {
			m.counter--
		} else {
			m.state = NONE
		}
	}
	return m.state
}

func (m *Machine) fire() {
	action := m.action
	m.action = nil
	if action != nil {
		action()
	}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Counter() int {
	return m.counter
}

// Pending reports whether an action is waiting for the screen to turn black
func (m *Machine) Pending() bool {
	return m.action != nil
}

// Alpha is the opacity of the black overlay, in [0, 1]
func (m *Machine) Alpha() float64 {
	return float64(m.counter) / float64(m.duration)
}
