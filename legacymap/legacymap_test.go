package legacymap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/akmonengine/blockgame"
	"github.com/akmonengine/blockgame/trail"
)

func encode(t *testing.T, blocks []Block) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, blocks); err != nil {
		t.Fatalf("binary.Write() error: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_FieldOrder(t *testing.T) {
	var data []byte
	for _, f := range []float32{-2, 1, 1.5, 0.5, 2, 0, 30} {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	data = binary.LittleEndian.AppendUint32(data, 0x0000ff)
	// Partial second record
	data = append(data, 0x01, 0x02, 0x03)

	blocks, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	expected := Block{PosZ: -2, PosX: 1, SizeX: 1.5, SizeZ: 0.5, Height: 2, Bottom: 0, Rotation: 30, Color: 0x0000ff}
	if len(blocks) != 1 || blocks[0] != expected {
		t.Errorf("Decode() = %+v, want [%+v]", blocks, expected)
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		color    uint32
		expected uint32
	}{
		{0x0000ff, 0xff0000},
		{0x00ff00, 0x00ff00},
		{0x123456, 0x563412},
		{0xff123456, 0x563412},
	}

	for _, tt := range tests {
		if got := RGB(tt.color); got != tt.expected {
			t.Errorf("RGB(%06x) = %06x, want %06x", tt.color, got, tt.expected)
		}
	}
}

func TestRecordName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"scenes/level.lua", "level.rec"},
		{"level", "level.rec"},
		{"/tmp/a.b.lua", "a.b.rec"},
	}
	for _, tt := range tests {
		got, err := RecordName(tt.path)
		if err != nil || got != tt.expected {
			t.Errorf("RecordName(%q) = %q, %v, want %q", tt.path, got, err, tt.expected)
		}
	}

	if _, err := RecordName(strings.Repeat("x", 64) + ".lua"); !errors.Is(err, trail.ErrNameTooLong) {
		t.Errorf("error = %v, want ErrNameTooLong", err)
	}
}

var testMap = []Block{
	{PosZ: -2, PosX: 1, SizeX: 1.5, SizeZ: 0.5, Height: 2, Bottom: 0, Rotation: 0, Color: 0x0000ff},
	{PosZ: 3, PosX: 4, SizeX: 2, SizeZ: 1, Height: 1, Bottom: 2, Rotation: -90, Color: 0x00ff00},
	{PosZ: 0, PosX: 0, SizeX: 1, SizeZ: 1, Height: 1, Bottom: 0, Rotation: 405, Color: 0x123456},
	{PosZ: 5, PosX: 5, SizeX: 1, SizeZ: 1, Height: 1, Bottom: 0, Rotation: 180, Color: 0},
}

func TestConvert(t *testing.T) {
	blocks, err := Decode(encode(t, testMap))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	var out strings.Builder
	if err := Convert(&out, blocks, "level.rec"); err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	expected := []string{
		`place_gem({pos={1.0,2.4,-2.0}, record="level.rec"})`,
		`place_block({pos={  1.0,  1.0, -2.0}, size={ 1.5, 1.0, 0.5}, color=0xff0000})`,
		`place_block({pos={  3.0,  2.5,  4.0}, size={ 1.0, 0.5, 2.0}, color=0x00ff00})`,
		`block = place_block({pos={  0.0,  0.5,  0.0}, size={ 1.0, 0.5, 1.0}, color=0x563412}); rotate_block(block, {angle= 45.0})`,
		`place_block({pos={  5.0,  0.5,  5.0}, size={ 1.0, 0.5, 1.0}, color=0x000000})`,
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(expected), out.String())
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestConvert_LoadsAsScene(t *testing.T) {
	var out strings.Builder
	if err := Convert(&out, testMap, "level.rec"); err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	w := blockgame.NewWorld(blockgame.DefaultConfig(), trail.NewFileStore(t.TempDir()), log.New(io.Discard, "", 0))
	if err := w.LoadString("level", out.String()); err != nil {
		t.Fatalf("LoadString() error: %v", err)
	}

	if w.Colliders.Len() != len(testMap) {
		t.Errorf("loaded %d blocks, want %d", w.Colliders.Len(), len(testMap))
	}
	if len(w.Gems()) != 1 || w.Gems()[0].Record != "level.rec" {
		t.Fatalf("gems = %+v", w.Gems())
	}

	box, _ := w.Colliders.Get(0)
	if box.Color != 0xff0000 {
		t.Errorf("color = %06x, want ff0000", box.Color)
	}
}
