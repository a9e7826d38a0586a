package scene

import (
	"errors"
	"fmt"

	"github.com/akmonengine/blockgame/actor"
	"github.com/akmonengine/blockgame/kinematic"
	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
)

// toVector converts a {x, y, z} array
func toVector(v lua.LValue) (mgl64.Vec3, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("vector expected, got %s", v.Type())
	}

	var vec mgl64.Vec3
	for i := 0; i < 3; i++ {
		n, ok := tbl.RawGetInt(i + 1).(lua.LNumber)
		if !ok {
			return mgl64.Vec3{}, fmt.Errorf("vector component %d must be a number", i+1)
		}
		vec[i] = float64(n)
	}
	return vec, nil
}

func checkVector(L *lua.LState, arg int) mgl64.Vec3 {
	vec, err := toVector(L.Get(arg))
	if err != nil {
		L.ArgError(arg, err.Error())
	}
	return vec
}

func optVector(L *lua.LState, tbl *lua.LTable, arg int, field string) *mgl64.Vec3 {
	v := tbl.RawGetString(field)
	if v == lua.LNil {
		return nil
	}

	vec, err := toVector(v)
	if err != nil {
		L.ArgError(arg, fmt.Sprintf("'%s': %s", field, err))
	}
	return &vec
}

func optNumber(L *lua.LState, tbl *lua.LTable, arg int, field string) *float64 {
	v := tbl.RawGetString(field)
	if v == lua.LNil {
		return nil
	}

	n, ok := v.(lua.LNumber)
	if !ok {
		L.ArgError(arg, fmt.Sprintf("'%s' must be a number", field))
	}
	f := float64(n)
	return &f
}

func optRotation(L *lua.LState, tbl *lua.LTable, arg int) actor.RotateUpdate {
	return actor.RotateUpdate{
		Axis:            optVector(L, tbl, arg, "axis"),
		Angle:           optNumber(L, tbl, arg, "angle"),
		AngularVelocity: optNumber(L, tbl, arg, "angular_velocity"),
		Reset:           lua.LVAsBool(tbl.RawGetString("reset")),
	}
}

func blockInfo(L *lua.LState, tbl *lua.LTable, arg int) BlockInfo {
	info := BlockInfo{
		Position: optVector(L, tbl, arg, "pos"),
		Size:     optVector(L, tbl, arg, "size"),
	}

	if color := optNumber(L, tbl, arg, "color"); color != nil {
		c := uint32(*color)
		info.Color = &c
	}

	if v := tbl.RawGetString("rotation"); v != lua.LNil {
		rotationTable, ok := v.(*lua.LTable)
		if !ok {
			L.ArgError(arg, "'rotation' must be a table")
		}
		rotation, _, err := optRotation(L, rotationTable, arg).Apply(mgl64.Ident3(), mgl64.Ident3())
		if err != nil {
			L.ArgError(arg, err.Error())
		}
		info.Rotation = &rotation
	}

	return info
}

// argOf returns the script argument an API error is about
func argOf(err error) int {
	if errors.Is(err, actor.ErrInvalidRotation) {
		return 2
	}
	return 1
}

// place_block{pos, size, color?, rotation?{axis?, angle}} : id
func (s *Script) placeBlock(L *lua.LState) int {
	info := blockInfo(L, L.CheckTable(1), 1)

	L.Push(lua.LNumber(s.api.PlaceBlock(info)))
	return 1
}

// move_block(id, {pos?, size?, color?, rotation?})
func (s *Script) moveBlock(L *lua.LState) int {
	id := L.CheckInt(1)
	info := blockInfo(L, L.CheckTable(2), 2)

	if err := s.api.MoveBlock(id, info); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// rotate_block(id, {axis?, angle?, angular_velocity?, reset?})
func (s *Script) rotateBlock(L *lua.LState) int {
	id := L.CheckInt(1)
	update := optRotation(L, L.CheckTable(2), 2)

	if err := s.api.RotateBlock(id, update); err != nil {
		L.ArgError(argOf(err), err.Error())
	}
	return 0
}

// create_object({ids...}, origin) : id
func (s *Script) createObject(L *lua.LState) int {
	tbl := L.CheckTable(1)
	origin := checkVector(L, 2)

	ids := make([]int, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(1, fmt.Sprintf("block id %d must be a number", i))
		}
		ids = append(ids, int(n))
	}

	id, err := s.api.CreateObject(ids, origin)
	if err != nil {
		L.ArgError(1, err.Error())
	}

	L.Push(lua.LNumber(id))
	return 1
}

// move_object(id, {offset?, acceleration?, reset?})
func (s *Script) moveObject(L *lua.LState) int {
	id := L.CheckInt(1)
	tbl := L.CheckTable(2)

	update := kinematic.MoveUpdate{
		Offset:       optVector(L, tbl, 2, "offset"),
		Acceleration: optVector(L, tbl, 2, "acceleration"),
		Reset:        lua.LVAsBool(tbl.RawGetString("reset")),
	}
	if err := s.api.MoveObject(id, update); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// rotate_object(id, {axis?, angle?, angular_velocity?, reset?})
func (s *Script) rotateObject(L *lua.LState) int {
	id := L.CheckInt(1)
	update := optRotation(L, L.CheckTable(2), 2)

	if err := s.api.RotateObject(id, update); err != nil {
		L.ArgError(argOf(err), err.Error())
	}
	return 0
}

// update_object(id)
func (s *Script) updateObject(L *lua.LState) int {
	id := L.CheckInt(1)

	if err := s.api.UpdateObject(id); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// place_gem{pos, record?}
func (s *Script) placeGem(L *lua.LState) int {
	tbl := L.CheckTable(1)

	var info GemInfo
	if pos := optVector(L, tbl, 1, "pos"); pos != nil {
		info.Position = *pos
	}
	if v := tbl.RawGetString("record"); v != lua.LNil {
		record, ok := v.(lua.LString)
		if !ok {
			L.ArgError(1, "'record' must be a string")
		}
		info.Record = string(record)
	}

	if err := s.api.PlaceGem(info); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// set_start{x, y, z}
func (s *Script) setStart(L *lua.LState) int {
	s.api.SetStart(checkVector(L, 1))
	return 0
}
