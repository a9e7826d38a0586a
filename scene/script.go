package scene

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// TickFunction is the optional global run once per simulation tick
const TickFunction = "tick"

// Script is a loaded scene description bound to an API
type Script struct {
	L   *lua.LState
	api API
}

// NewScript creates a Lua state with the scene functions registered
func NewScript(api API) *Script {
	s := &Script{
		L:   lua.NewState(),
		api: api,
	}
	s.register()

	return s
}

func (s *Script) register() {
	functions := map[string]lua.LGFunction{
		"place_block":   s.placeBlock,
		"move_block":    s.moveBlock,
		"rotate_block":  s.rotateBlock,
		"create_object": s.createObject,
		"move_object":   s.moveObject,
		"rotate_object": s.rotateObject,
		"update_object": s.updateObject,
		"place_gem":     s.placeGem,
		"set_start":     s.setStart,
	}
	for name, fn := range functions {
		s.L.SetGlobal(name, s.L.NewFunction(fn))
	}
}

// DoFile runs a scene file
func (s *Script) DoFile(path string) error {
	if err := s.L.DoFile(path); err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}
	return nil
}

// DoString runs scene source, mostly for tests and embedded scenes
func (s *Script) DoString(source string) error {
	if err := s.L.DoString(source); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// HasTick reports whether the scene defined a tick function
func (s *Script) HasTick() bool {
	return s.L.GetGlobal(TickFunction).Type() == lua.LTFunction
}

// Tick runs the scene tick function, if any. An error only aborts this call.
func (s *Script) Tick() error {
	fn := s.L.GetGlobal(TickFunction)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
	if err != nil {
		return fmt.Errorf("scene %s(): %w", TickFunction, err)
	}
	return nil
}

func (s *Script) Close() {
	s.L.Close()
}
