package fade

import "testing"

// advanceUntil steps m until it reaches state, failing after limit ticks
func advanceUntil(t *testing.T, m *Machine, state State, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		if m.Advance() == state {
			return i
		}
	}
	t.Fatalf("state %v not reached after %d ticks, still %v", state, limit, m.State())
	return 0
}

func TestMachine_Cycle(t *testing.T) {
	m := NewMachine(DefaultDuration)
	if m.State() != NONE || m.Alpha() != 0 {
		t.Fatalf("new machine = %v alpha %v, want NONE alpha 0", m.State(), m.Alpha())
	}

	fired := 0
	m.Trigger(func() { fired++ })
	if m.State() != FADE_OUT {
		t.Fatalf("state = %v, want FADE_OUT", m.State())
	}

	ticks := advanceUntil(t, m, BLACK, 100)
	if ticks != DefaultDuration+1 {
		t.Errorf("BLACK reached after %d ticks, want %d", ticks, DefaultDuration+1)
	}
	if fired != 1 {
		t.Errorf("action fired %d times on entering BLACK, want 1", fired)
	}
	if m.Alpha() != 1 {
		t.Errorf("alpha = %v in BLACK, want 1", m.Alpha())
	}

	if m.Advance() != FADE_IN {
		t.Fatalf("state = %v, want FADE_IN", m.State())
	}
	advanceUntil(t, m, NONE, 100)

	for rep := 0; rep < 10; rep++ {
		m.Advance()
	}
	if fired != 1 {
		t.Errorf("action fired %d times, want exactly 1", fired)
	}
}

func TestMachine_ActionOnlyOnBlack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
	}{
		{"from NONE", func(m *Machine) {}},
		{"during FADE_IN", func(m *Machine) {
			m.Begin()
			for rep := 0; rep < 20; rep++ {
				m.Advance()
			}
		}},
		{"during FADE_OUT", func(m *Machine) {
			m.Trigger(nil)
			for rep := 0; rep < 10; rep++ {
				m.Advance()
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(10)
			tt.setup(m)

			fired := 0
			m.Trigger(func() {
				fired++
				if m.State() != BLACK {
					t.Errorf("action ran in state %v", m.State())
				}
			})

			for rep := 0; rep < 100; rep++ {
				m.Advance()
			}
			if fired != 1 {
				t.Errorf("fired %d times, want 1", fired)
			}
			if m.State() != NONE {
				t.Errorf("final state = %v, want NONE", m.State())
			}
		})
	}
}

func TestMachine_LatestActionWins(t *testing.T) {
	m := NewMachine(5)

	var got []string
	m.Trigger(func() { got = append(got, "reload") })
	m.Advance()
	m.Trigger(func() { got = append(got, "quit") })

	advanceUntil(t, m, NONE, 100)
	if len(got) != 1 || got[0] != "quit" {
		t.Errorf("fired %v, want [quit]", got)
	}
}

func TestMachine_BeginFromAction(t *testing.T) {
	m := NewMachine(5)

	// A reload restarts the fade in from within the action
	m.Trigger(func() { m.Begin() })
	advanceUntil(t, m, FADE_IN, 100)
	if m.Counter() != 5 {
		t.Errorf("counter = %d, want 5", m.Counter())
	}
	if m.Pending() {
		t.Error("no action should be pending")
	}
	advanceUntil(t, m, NONE, 100)
}
